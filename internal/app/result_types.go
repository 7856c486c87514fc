package app

import "github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"

// AccessResult is the outcome of a role gate check.
type AccessResult struct {
	Session *Session  `json:"session"`
	Area    core.Area `json:"area"`
	Allowed bool      `json:"allowed"`
	Message string    `json:"message,omitempty"`
}

// ReceivablesResult wraps the aging analysis with the policy text shown beside it.
type ReceivablesResult struct {
	core.ReceivablesAnalysis
	Policy string `json:"policy"`
}

type AccountListResult struct {
	Accounts []core.Account `json:"accounts"`
}

// JournalLine is a journal entry with its account names resolved for display.
// Unknown codes resolve to the code itself.
type JournalLine struct {
	core.JournalEntry
	DebitName  string `json:"debit_name"`
	CreditName string `json:"credit_name"`
}

type JournalListResult struct {
	Entries []JournalLine `json:"entries"`
}

type PatientListResult struct {
	Query    string         `json:"query"`
	Patients []core.Patient `json:"patients"`
}

// SummaryResult holds the summary text, which may be one of the ai fallback strings.
type SummaryResult struct {
	Session *Session `json:"session"`
	Note    string   `json:"note"`
	Summary string   `json:"summary"`
}
