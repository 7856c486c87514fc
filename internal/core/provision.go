package core

import "github.com/shopspring/decimal"

// Provision (penyisihan piutang) rates by aging tier.
var (
	RateCurrent  = decimal.Zero
	RateDoubtful = decimal.RequireFromString("0.5")
	RateLoss     = decimal.NewFromInt(1)
)

// ProvisionPolicy describes the tiering applied by ProvisionRate.
const ProvisionPolicy = "6-12 months (50%), >12 months (100%)"

type AgingTier string

const (
	TierCurrent  AgingTier = "current"
	TierDoubtful AgingTier = "doubtful"
	TierLoss     AgingTier = "loss"
)

// TierFor buckets an age in months. Each tier's lower bound is exclusive:
// 6 months is still current and 12 months is still doubtful.
func TierFor(ageMonths int) AgingTier {
	switch {
	case ageMonths > 12:
		return TierLoss
	case ageMonths > 6:
		return TierDoubtful
	default:
		return TierCurrent
	}
}

// ProvisionRate returns the share of a receivable to provide for at the given age.
func ProvisionRate(ageMonths int) decimal.Decimal {
	switch TierFor(ageMonths) {
	case TierLoss:
		return RateLoss
	case TierDoubtful:
		return RateDoubtful
	default:
		return RateCurrent
	}
}

// ProvisionedReceivable is a receivable annotated with its provision.
type ProvisionedReceivable struct {
	Receivable
	Tier            AgingTier       `json:"tier"`
	ProvisionRate   decimal.Decimal `json:"provision_rate"`
	ProvisionAmount decimal.Decimal `json:"provision_amount"`
}

// ReceivablesAnalysis is the provision schedule plus gross, allowance and net figures.
type ReceivablesAnalysis struct {
	Items           []ProvisionedReceivable `json:"items"`
	TotalReceivable decimal.Decimal         `json:"total_receivable"`
	TotalProvision  decimal.Decimal         `json:"total_provision"`
	NetReceivable   decimal.Decimal         `json:"net_receivable"`
}

// AnalyzeReceivables computes the provision for every item, preserving input order.
// The input slice is not modified. An empty input yields zero totals.
func AnalyzeReceivables(items []Receivable) ReceivablesAnalysis {
	analysis := ReceivablesAnalysis{
		Items:           make([]ProvisionedReceivable, 0, len(items)),
		TotalReceivable: decimal.Zero,
		TotalProvision:  decimal.Zero,
	}

	for _, item := range items {
		rate := ProvisionRate(item.AgeMonths)
		provision := item.Amount.Mul(rate)

		analysis.TotalReceivable = analysis.TotalReceivable.Add(item.Amount)
		analysis.TotalProvision = analysis.TotalProvision.Add(provision)

		analysis.Items = append(analysis.Items, ProvisionedReceivable{
			Receivable:      item,
			Tier:            TierFor(item.AgeMonths),
			ProvisionRate:   rate,
			ProvisionAmount: provision,
		})
	}

	analysis.NetReceivable = analysis.TotalReceivable.Sub(analysis.TotalProvision)
	return analysis
}
