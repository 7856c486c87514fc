package core

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type LedgerService interface {
	Submit(ctx context.Context, form EntryForm, postedBy string) (*JournalEntry, error)
	Entries(ctx context.Context) []JournalEntry
	Chart() *ChartOfAccounts
}

// Ledger holds journal entries in memory, most recent first.
// Nothing is persisted; the sequence lives as long as the process.
type Ledger struct {
	mu      sync.RWMutex
	chart   *ChartOfAccounts
	entries []JournalEntry
	newID   func() string
}

// NewLedger creates a ledger over chart, seeded with entries in the given (display) order.
func NewLedger(chart *ChartOfAccounts, seed ...JournalEntry) *Ledger {
	entries := make([]JournalEntry, len(seed))
	copy(entries, seed)
	return &Ledger{
		chart:   chart,
		entries: entries,
		newID:   uuid.NewString,
	}
}

// Submit validates form and, on success, prepends a new entry posted by postedBy.
// A rejected form leaves the sequence untouched.
func (l *Ledger) Submit(ctx context.Context, form EntryForm, postedBy string) (*JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form.Normalize()
	amount, err := form.Validate(l.chart)
	if err != nil {
		return nil, err
	}

	entry := JournalEntry{
		ID:            l.newID(),
		Date:          form.Date,
		Description:   form.Description,
		Reference:     form.Reference,
		DebitAccount:  form.DebitAccount,
		CreditAccount: form.CreditAccount,
		Amount:        amount,
		PostedBy:      postedBy,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]JournalEntry{entry}, l.entries...)

	return &entry, nil
}

// Entries returns a snapshot of the sequence, newest first.
func (l *Ledger) Entries(_ context.Context) []JournalEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]JournalEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Ledger) Chart() *ChartOfAccounts {
	return l.chart
}

var _ LedgerService = (*Ledger)(nil)
