package core

import "github.com/shopspring/decimal"

type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

type Account struct {
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// JournalEntry is a posted double-entry record pairing one debit and one credit account.
// Entries are immutable once accepted by the Ledger.
type JournalEntry struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	DebitAccount  string          `json:"debit_account"`
	CreditAccount string          `json:"credit_account"`
	Amount        decimal.Decimal `json:"amount"`
	PostedBy      string          `json:"posted_by"`
}

// Reporting line categories used by the comparative statements.
const (
	CategoryAssets      = "Assets"
	CategoryLiabilities = "Liabilities"
	CategoryEquity      = "Equity"
	CategoryRevenue     = "Revenue"
	CategoryExpense     = "Expense"
)

// FinancialItem is one comparative reporting line (current vs previous period).
type FinancialItem struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Name           string          `json:"name"`
	AmountCurrent  decimal.Decimal `json:"amount_current"`
	AmountPrevious decimal.Decimal `json:"amount_previous"`
}

type ReceivableStatus string

const (
	ReceivableUnpaid ReceivableStatus = "Unpaid"
	ReceivablePaid   ReceivableStatus = "Paid"
)

// Receivable is an amount owed by a payer, aged in whole months since it became due.
type Receivable struct {
	ID        string           `json:"id"`
	PayerName string           `json:"payer_name"`
	Amount    decimal.Decimal  `json:"amount"`
	AgeMonths int              `json:"age_months"`
	Status    ReceivableStatus `json:"status"`
}
