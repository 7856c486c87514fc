package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, category string, current, previous int64) core.FinancialItem {
	return core.FinancialItem{
		ID:             id,
		Category:       category,
		Name:           id,
		AmountCurrent:  decimal.NewFromInt(current),
		AmountPrevious: decimal.NewFromInt(previous),
	}
}

func TestSummarizeActivity_SeedData(t *testing.T) {
	s := core.SummarizeActivity(core.SeedActivity())
	assert.Equal(t, "6000000000", s.Revenue.String())
	assert.Equal(t, "4000000000", s.Expense.String())
	assert.Equal(t, "2000000000", s.Surplus.String())
	assert.True(t, s.IsSurplus())
	assert.Len(t, s.Revenues, 2)
	assert.Len(t, s.Expenses, 3)
}

func TestSummarizeActivity_Cases(t *testing.T) {
	tests := []struct {
		name    string
		items   []core.FinancialItem
		surplus string
		isPlus  bool
	}{
		{"deficit", []core.FinancialItem{item("r", core.CategoryRevenue, 10, 0), item("e", core.CategoryExpense, 15, 0)}, "-5", false},
		{"break even", []core.FinancialItem{item("r", core.CategoryRevenue, 10, 0), item("e", core.CategoryExpense, 10, 0)}, "0", true},
		{"empty", nil, "0", true},
		{"other categories ignored", []core.FinancialItem{item("x", core.CategoryAssets, 99, 0), item("r", core.CategoryRevenue, 1, 0)}, "1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.SummarizeActivity(tt.items)
			assert.Equal(t, tt.surplus, s.Surplus.String())
			assert.Equal(t, tt.isPlus, s.IsSurplus())
		})
	}
}

func TestBuildBalanceSheet_Groups(t *testing.T) {
	bs := core.BuildBalanceSheet(core.SeedBalanceSheet())
	require.Len(t, bs.Sections, 3)
	assert.Equal(t, core.CategoryAssets, bs.Sections[0].Category)
	assert.Equal(t, core.CategoryLiabilities, bs.Sections[1].Category)
	assert.Equal(t, core.CategoryEquity, bs.Sections[2].Category)

	assert.Len(t, bs.Sections[0].Lines, 3)
	assert.Equal(t, "2750000000", bs.Sections[0].TotalCurrent.String())
	assert.Equal(t, "2300000000", bs.Sections[0].TotalPrevious.String())
	assert.Len(t, bs.Lines, 5)
}

type failingSource struct{ core.StaticFinanceSource }

func (failingSource) Receivables(context.Context) ([]core.Receivable, error) {
	return nil, errors.New("source offline")
}

func TestReportingService(t *testing.T) {
	ctx := context.Background()
	svc := core.NewReportingService(core.NewSeedFinanceSource())

	bs, err := svc.GetBalanceSheet(ctx)
	require.NoError(t, err)
	assert.Len(t, bs.Lines, 5)

	act, err := svc.GetActivity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2000000000", act.Surplus.String())

	aging, err := svc.GetReceivablesAging(ctx)
	require.NoError(t, err)
	assert.Equal(t, "70000000", aging.TotalProvision.String())

	_, err = core.NewReportingService(&failingSource{}).GetReceivablesAging(ctx)
	assert.ErrorContains(t, err, "source offline")
}
