package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeedLedger() *core.Ledger {
	return core.NewLedger(core.NewChartOfAccounts(core.SeedChartOfAccounts()), core.SeedJournalEntries()...)
}

func validForm() core.EntryForm {
	return core.EntryForm{
		Date:          "2023-10-05",
		Description:   "Setoran kas",
		DebitAccount:  "1101",
		CreditAccount: "4101",
		Amount:        "1000000",
	}
}

func TestLedger_SubmitPrependsEntry(t *testing.T) {
	ctx := context.Background()
	l := newSeedLedger()

	entry, err := l.Submit(ctx, validForm(), "Current User")
	require.NoError(t, err)

	entries := l.Entries(ctx)
	require.Len(t, entries, 3)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "j1", entries[1].ID)
	assert.Equal(t, "j2", entries[2].ID)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, core.DefaultReference, entry.Reference)
	assert.Equal(t, "Current User", entry.PostedBy)
	assert.Equal(t, "1000000", entry.Amount.String())
}

func TestLedger_SubmitKeepsReference(t *testing.T) {
	l := newSeedLedger()
	form := validForm()
	form.Reference = "  KW-77 "
	form.Description = "  Setoran  "

	entry, err := l.Submit(context.Background(), form, "Admin")
	require.NoError(t, err)
	assert.Equal(t, "KW-77", entry.Reference)
	assert.Equal(t, "Setoran", entry.Description)
}

func TestLedger_SameAccountRejected(t *testing.T) {
	ctx := context.Background()
	l := newSeedLedger()
	form := validForm()
	form.CreditAccount = form.DebitAccount
	// other fields invalid too; the same-account check must still win
	form.Amount = "abc"
	form.Date = ""

	_, err := l.Submit(ctx, form, "Admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSameAccount))
	assert.Equal(t, "debit and credit accounts must be different", core.ErrSameAccount.Error())
	assert.Equal(t, 2, l.Len())
}

func TestLedger_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *core.EntryForm)
		field   string
		wantErr error
	}{
		{"missing debit", func(f *core.EntryForm) { f.DebitAccount = "" }, "debit_account", core.ErrMissingField},
		{"missing credit", func(f *core.EntryForm) { f.CreditAccount = " " }, "credit_account", core.ErrMissingField},
		{"missing date", func(f *core.EntryForm) { f.Date = "" }, "date", core.ErrMissingField},
		{"bad date", func(f *core.EntryForm) { f.Date = "05/10/2023" }, "date", core.ErrInvalidDate},
		{"missing description", func(f *core.EntryForm) { f.Description = "" }, "description", core.ErrMissingField},
		{"missing amount", func(f *core.EntryForm) { f.Amount = "" }, "amount", core.ErrMissingField},
		{"non-numeric amount", func(f *core.EntryForm) { f.Amount = "sepuluh" }, "amount", core.ErrInvalidAmount},
		{"zero amount", func(f *core.EntryForm) { f.Amount = "0" }, "amount", core.ErrInvalidAmount},
		{"negative amount", func(f *core.EntryForm) { f.Amount = "-5" }, "amount", core.ErrInvalidAmount},
		{"unknown debit", func(f *core.EntryForm) { f.DebitAccount = "9999" }, "debit_account", core.ErrUnknownAccount},
		{"unknown credit", func(f *core.EntryForm) { f.CreditAccount = "9998" }, "credit_account", core.ErrUnknownAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newSeedLedger()
			form := validForm()
			tt.mutate(&form)

			_, err := l.Submit(context.Background(), form, "Admin")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, 2, l.Len())
		})
	}
}

func TestLedger_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := newSeedLedger()
	_, err := l.Submit(ctx, validForm(), "Admin")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, l.Len())
}

func TestLedger_EntriesIsSnapshot(t *testing.T) {
	ctx := context.Background()
	l := newSeedLedger()
	entries := l.Entries(ctx)
	entries[0].Description = "changed"
	assert.Equal(t, "Pembayaran BPJS cair", l.Entries(ctx)[0].Description)
}

func TestLedger_ConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	l := newSeedLedger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Submit(ctx, validForm(), "Admin")
		}()
	}
	wg.Wait()
	assert.Equal(t, 52, l.Len())
}

func TestChartOfAccounts_AccountName(t *testing.T) {
	chart := core.NewChartOfAccounts(core.SeedChartOfAccounts())
	assert.Equal(t, "Kas (Cash)", chart.AccountName("1101"))
	assert.Equal(t, "7777", chart.AccountName("7777"))
	assert.Len(t, chart.Accounts(), 9)
}
