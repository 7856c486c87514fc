package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// ActivitySummary is the single-step activity statement (laporan aktivitas).
// Surplus is Revenue minus Expense over the current-period amounts.
type ActivitySummary struct {
	Revenues []FinancialItem `json:"revenues"`
	Expenses []FinancialItem `json:"expenses"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expense  decimal.Decimal `json:"expense"`
	Surplus  decimal.Decimal `json:"surplus"`
}

// IsSurplus reports whether the period closed non-negative. Exactly zero counts as a surplus.
func (a ActivitySummary) IsSurplus() bool {
	return !a.Surplus.IsNegative()
}

// StatementSection groups comparative lines sharing a category.
type StatementSection struct {
	Category      string          `json:"category"`
	Lines         []FinancialItem `json:"lines"`
	TotalCurrent  decimal.Decimal `json:"total_current"`
	TotalPrevious decimal.Decimal `json:"total_previous"`
}

// BalanceSheet is the comparative statement of financial position.
// Sections appear in the order their category first occurs in Lines.
type BalanceSheet struct {
	Lines    []FinancialItem    `json:"lines"`
	Sections []StatementSection `json:"sections"`
}

// SummarizeActivity partitions items into Revenue and Expense and sums current amounts.
// Items in any other category are ignored.
func SummarizeActivity(items []FinancialItem) ActivitySummary {
	s := ActivitySummary{
		Revenues: []FinancialItem{},
		Expenses: []FinancialItem{},
		Revenue:  decimal.Zero,
		Expense:  decimal.Zero,
	}
	for _, item := range items {
		switch item.Category {
		case CategoryRevenue:
			s.Revenues = append(s.Revenues, item)
			s.Revenue = s.Revenue.Add(item.AmountCurrent)
		case CategoryExpense:
			s.Expenses = append(s.Expenses, item)
			s.Expense = s.Expense.Add(item.AmountCurrent)
		}
	}
	s.Surplus = s.Revenue.Sub(s.Expense)
	return s
}

// BuildBalanceSheet groups lines by category with current and previous totals.
func BuildBalanceSheet(items []FinancialItem) BalanceSheet {
	bs := BalanceSheet{
		Lines:    make([]FinancialItem, len(items)),
		Sections: []StatementSection{},
	}
	copy(bs.Lines, items)

	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(bs.Sections)
			index[item.Category] = i
			bs.Sections = append(bs.Sections, StatementSection{
				Category:      item.Category,
				TotalCurrent:  decimal.Zero,
				TotalPrevious: decimal.Zero,
			})
		}
		sec := &bs.Sections[i]
		sec.Lines = append(sec.Lines, item)
		sec.TotalCurrent = sec.TotalCurrent.Add(item.AmountCurrent)
		sec.TotalPrevious = sec.TotalPrevious.Add(item.AmountPrevious)
	}
	return bs
}

// ── Interface ─────────────────────────────────────────────────────────────────

// FinanceSource supplies the reporting inputs. The bundled implementation serves fixed seed data.
type FinanceSource interface {
	BalanceSheetItems(ctx context.Context) ([]FinancialItem, error)
	ActivityItems(ctx context.Context) ([]FinancialItem, error)
	Receivables(ctx context.Context) ([]Receivable, error)
}

// ReportingService provides read-only reports over a FinanceSource.
// Every call recomputes from the current source data.
type ReportingService interface {
	GetBalanceSheet(ctx context.Context) (*BalanceSheet, error)
	GetActivity(ctx context.Context) (*ActivitySummary, error)
	GetReceivablesAging(ctx context.Context) (*ReceivablesAnalysis, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	source FinanceSource
}

// NewReportingService constructs a ReportingService backed by source.
func NewReportingService(source FinanceSource) ReportingService {
	return &reportingService{source: source}
}

func (s *reportingService) GetBalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	items, err := s.source.BalanceSheetItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance sheet items: %w", err)
	}
	bs := BuildBalanceSheet(items)
	return &bs, nil
}

func (s *reportingService) GetActivity(ctx context.Context) (*ActivitySummary, error) {
	items, err := s.source.ActivityItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity items: %w", err)
	}
	summary := SummarizeActivity(items)
	return &summary, nil
}

func (s *reportingService) GetReceivablesAging(ctx context.Context) (*ReceivablesAnalysis, error) {
	items, err := s.source.Receivables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load receivables: %w", err)
	}
	analysis := AnalyzeReceivables(items)
	return &analysis, nil
}
