package core_test

import (
	"testing"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionRate_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		tier core.AgingTier
		rate string
	}{
		{age: -1, tier: core.TierCurrent, rate: "0"},
		{age: 0, tier: core.TierCurrent, rate: "0"},
		{age: 6, tier: core.TierCurrent, rate: "0"},
		{age: 7, tier: core.TierDoubtful, rate: "0.5"},
		{age: 12, tier: core.TierDoubtful, rate: "0.5"},
		{age: 13, tier: core.TierLoss, rate: "1"},
		{age: 120, tier: core.TierLoss, rate: "1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, core.TierFor(tt.age), "age %d", tt.age)
		assert.True(t, decimal.RequireFromString(tt.rate).Equal(core.ProvisionRate(tt.age)), "age %d", tt.age)
	}
}

func TestAnalyzeReceivables_SeedData(t *testing.T) {
	input := core.SeedReceivables()
	a := core.AnalyzeReceivables(input)

	require.Len(t, a.Items, 4)
	assert.Equal(t, "r1", a.Items[0].ID)
	assert.Equal(t, "r4", a.Items[3].ID)

	assert.True(t, a.Items[0].ProvisionAmount.IsZero())
	assert.Equal(t, "50000000", a.Items[1].ProvisionAmount.String())
	assert.Equal(t, "20000000", a.Items[2].ProvisionAmount.String())
	assert.True(t, a.Items[3].ProvisionAmount.IsZero())

	assert.Equal(t, "920000000", a.TotalReceivable.String())
	assert.Equal(t, "70000000", a.TotalProvision.String())
	assert.Equal(t, "850000000", a.NetReceivable.String())

	// input untouched
	assert.Equal(t, core.SeedReceivables(), input)
}

func TestAnalyzeReceivables_Example(t *testing.T) {
	a := core.AnalyzeReceivables([]core.Receivable{
		{ID: "a", Amount: decimal.NewFromInt(500000000), AgeMonths: 2},
		{ID: "b", Amount: decimal.NewFromInt(100000000), AgeMonths: 7},
		{ID: "c", Amount: decimal.NewFromInt(20000000), AgeMonths: 13},
	})
	assert.Equal(t, "620000000", a.TotalReceivable.String())
	assert.Equal(t, "70000000", a.TotalProvision.String())
	assert.Equal(t, "550000000", a.NetReceivable.String())
}

func TestAnalyzeReceivables_Empty(t *testing.T) {
	a := core.AnalyzeReceivables(nil)
	assert.NotNil(t, a.Items)
	assert.Empty(t, a.Items)
	assert.True(t, a.TotalReceivable.IsZero())
	assert.True(t, a.TotalProvision.IsZero())
	assert.True(t, a.NetReceivable.IsZero())
}

func TestAnalyzeReceivables_PaidStillProvisioned(t *testing.T) {
	a := core.AnalyzeReceivables([]core.Receivable{
		{ID: "p", Amount: decimal.NewFromInt(1000), AgeMonths: 24, Status: core.ReceivablePaid},
	})
	assert.Equal(t, "1000", a.TotalProvision.String())
}
