package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Seed data for the bundled demonstration dataset. Amounts are IDR.

func idr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func SeedChartOfAccounts() []Account {
	return []Account{
		{Code: "1101", Name: "Kas (Cash)", Type: Asset},
		{Code: "1102", Name: "Piutang Pelayanan (AR)", Type: Asset},
		{Code: "1201", Name: "Persediaan Obat (Inventory)", Type: Asset},
		{Code: "2101", Name: "Utang Usaha (AP)", Type: Liability},
		{Code: "4101", Name: "Pendapatan Layanan (BLU Revenue)", Type: Revenue},
		{Code: "4201", Name: "Pendapatan APBN", Type: Revenue},
		{Code: "5101", Name: "Beban Pegawai", Type: Expense},
		{Code: "5201", Name: "Beban Persediaan/Obat", Type: Expense},
		{Code: "5301", Name: "Beban Operasional Lainnya", Type: Expense},
	}
}

// SeedJournalEntries returns the initial ledger contents, newest first.
func SeedJournalEntries() []JournalEntry {
	return []JournalEntry{
		{ID: "j1", Date: "2023-10-01", Description: "Pembayaran BPJS cair", Reference: "REF-001", DebitAccount: "1101", CreditAccount: "1102", Amount: idr(250000000), PostedBy: "Admin"},
		{ID: "j2", Date: "2023-10-02", Description: "Pembelian Obat", Reference: "INV-992", DebitAccount: "1201", CreditAccount: "1101", Amount: idr(50000000), PostedBy: "Admin"},
	}
}

func SeedBalanceSheet() []FinancialItem {
	return []FinancialItem{
		{ID: "1", Category: CategoryAssets, Name: "Cash & Cash Equivalents", AmountCurrent: idr(1500000000), AmountPrevious: idr(1200000000)},
		{ID: "2", Category: CategoryAssets, Name: "Short Term Investments", AmountCurrent: idr(500000000), AmountPrevious: idr(300000000)},
		{ID: "3", Category: CategoryAssets, Name: "Accounts Receivable (Net)", AmountCurrent: idr(750000000), AmountPrevious: idr(800000000)},
		{ID: "4", Category: CategoryLiabilities, Name: "Short Term Debt", AmountCurrent: idr(200000000), AmountPrevious: idr(250000000)},
		{ID: "5", Category: CategoryEquity, Name: "Net Assets", AmountCurrent: idr(2550000000), AmountPrevious: idr(2050000000)},
	}
}

func SeedActivity() []FinancialItem {
	return []FinancialItem{
		{ID: "a1", Category: CategoryRevenue, Name: "Service Revenue (BLU)", AmountCurrent: idr(5000000000), AmountPrevious: idr(4800000000)},
		{ID: "a2", Category: CategoryRevenue, Name: "APBN Grant", AmountCurrent: idr(1000000000), AmountPrevious: idr(1000000000)},
		{ID: "a3", Category: CategoryExpense, Name: "Personnel Expenses", AmountCurrent: idr(2500000000), AmountPrevious: idr(2400000000)},
		{ID: "a4", Category: CategoryExpense, Name: "Operational Supplies", AmountCurrent: idr(1200000000), AmountPrevious: idr(1100000000)},
		{ID: "a5", Category: CategoryExpense, Name: "Depreciation", AmountCurrent: idr(300000000), AmountPrevious: idr(280000000)},
	}
}

func SeedReceivables() []Receivable {
	return []Receivable{
		{ID: "r1", PayerName: "BPJS Kesehatan", Amount: idr(500000000), AgeMonths: 2, Status: ReceivableUnpaid},
		{ID: "r2", PayerName: "Insurer A", Amount: idr(100000000), AgeMonths: 7, Status: ReceivableUnpaid},
		{ID: "r3", PayerName: "General Patient X", Amount: idr(20000000), AgeMonths: 13, Status: ReceivableUnpaid},
		{ID: "r4", PayerName: "Ministry of Health", Amount: idr(300000000), AgeMonths: 1, Status: ReceivableUnpaid},
	}
}

func SeedPatients() []Patient {
	return []Patient{
		{
			ID:           "P001",
			ResourceType: "Patient",
			Name:         []HumanName{{Use: "official", Family: "Santoso", Given: []string{"Budi"}}},
			Gender:       "male",
			BirthDate:    "1980-05-12",
			Identifier:   []Identifier{{System: "nik", Value: "320101010101"}},
		},
		{
			ID:           "P002",
			ResourceType: "Patient",
			Name:         []HumanName{{Use: "official", Family: "Wijaya", Given: []string{"Siti", "Amina"}}},
			Gender:       "female",
			BirthDate:    "1992-11-20",
			Identifier:   []Identifier{{System: "nik", Value: "320202020202"}},
		},
	}
}

// StaticFinanceSource serves fixed reporting inputs.
type StaticFinanceSource struct {
	BalanceSheet []FinancialItem
	Activity     []FinancialItem
	Aging        []Receivable
}

// NewSeedFinanceSource returns a source over the bundled demonstration data.
func NewSeedFinanceSource() *StaticFinanceSource {
	return &StaticFinanceSource{
		BalanceSheet: SeedBalanceSheet(),
		Activity:     SeedActivity(),
		Aging:        SeedReceivables(),
	}
}

func (s *StaticFinanceSource) BalanceSheetItems(_ context.Context) ([]FinancialItem, error) {
	return append([]FinancialItem(nil), s.BalanceSheet...), nil
}

func (s *StaticFinanceSource) ActivityItems(_ context.Context) ([]FinancialItem, error) {
	return append([]FinancialItem(nil), s.Activity...), nil
}

func (s *StaticFinanceSource) Receivables(_ context.Context) ([]Receivable, error) {
	return append([]Receivable(nil), s.Aging...), nil
}

var _ FinanceSource = (*StaticFinanceSource)(nil)
