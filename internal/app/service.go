package app

import (
	"context"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ResolveSession returns the session with the given id, or a fresh session
	// when id is empty, unknown or expired.
	ResolveSession(ctx context.Context, id string) (*Session, error)

	// SelectRole switches the viewing role of a session.
	SelectRole(ctx context.Context, sessionID, role string) (*Session, error)

	// CheckAccess reports whether the session's role may view area, with the
	// replacement text to show when it may not.
	CheckAccess(ctx context.Context, sessionID string, area core.Area) (*AccessResult, error)

	// GetBalanceSheet returns the comparative statement of financial position.
	GetBalanceSheet(ctx context.Context) (*core.BalanceSheet, error)

	// GetActivity returns the activity statement with its surplus or deficit.
	GetActivity(ctx context.Context) (*core.ActivitySummary, error)

	// GetReceivablesAging returns the provision schedule for outstanding receivables.
	GetReceivablesAging(ctx context.Context) (*ReceivablesResult, error)

	// ListAccounts returns the chart of accounts in display order.
	ListAccounts(ctx context.Context) (*AccountListResult, error)

	// ListJournalEntries returns the ledger newest first, with account names resolved.
	ListJournalEntries(ctx context.Context) (*JournalListResult, error)

	// PostJournalEntry validates and records a journal entry attributed to the session's actor.
	PostJournalEntry(ctx context.Context, req PostEntryRequest) (*JournalLine, error)

	// SearchPatients returns patients matching query by family or given name.
	SearchPatients(ctx context.Context, query string) (*PatientListResult, error)

	// GetPatient returns a single patient by id.
	GetPatient(ctx context.Context, id string) (*core.Patient, error)

	// SelectPatient records the patient a session is working on.
	SelectPatient(ctx context.Context, sessionID, patientID string) (*Session, error)

	// SummarizeNote drafts a visit summary for a clinical note. At most one
	// summary per session runs at a time; a concurrent call fails with
	// ErrSummaryInProgress without contacting the model.
	SummarizeNote(ctx context.Context, req SummarizeRequest) (*SummaryResult, error)
}
