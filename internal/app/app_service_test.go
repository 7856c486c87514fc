package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	mock_ai "github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai/mocks"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, summarizer ai.SummaryService) (app.ApplicationService, *core.Ledger) {
	t.Helper()
	ledger := core.NewLedger(core.NewChartOfAccounts(core.SeedChartOfAccounts()), core.SeedJournalEntries()...)
	svc := app.NewAppService(
		app.NewSessionStore(time.Hour, "Current User"),
		ledger,
		core.NewReportingService(core.NewSeedFinanceSource()),
		core.NewStaticDirectory(core.SeedPatients()),
		summarizer,
		zerolog.Nop(),
	)
	return svc, ledger
}

func TestAppService_ResolveSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	first, err := svc.ResolveSession(ctx, "")
	require.NoError(t, err)

	again, err := svc.ResolveSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := svc.ResolveSession(ctx, "stale-id")
	require.NoError(t, err)
	assert.NotEqual(t, "stale-id", other.ID)
}

func TestAppService_RoleGate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)
	sess, _ := svc.ResolveSession(ctx, "")

	tests := []struct {
		role      string
		financial bool
		clinical  bool
	}{
		{"admin", true, true},
		{"accountant", true, false},
		{"doctor", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			_, err := svc.SelectRole(ctx, sess.ID, tt.role)
			require.NoError(t, err)

			fin, err := svc.CheckAccess(ctx, sess.ID, core.AreaFinancial)
			require.NoError(t, err)
			assert.Equal(t, tt.financial, fin.Allowed)

			cli, err := svc.CheckAccess(ctx, sess.ID, core.AreaClinical)
			require.NoError(t, err)
			assert.Equal(t, tt.clinical, cli.Allowed)
		})
	}

	_, _ = svc.SelectRole(ctx, sess.ID, "doctor")
	res, _ := svc.CheckAccess(ctx, sess.ID, core.AreaFinancial)
	assert.Equal(t, "Access Denied: Financial Data Restricted", res.Message)

	_, err := svc.SelectRole(ctx, sess.ID, "janitor")
	assert.Error(t, err)
}

func TestAppService_PostJournalEntry(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newService(t, nil)
	sess, _ := svc.ResolveSession(ctx, "")

	line, err := svc.PostJournalEntry(ctx, app.PostEntryRequest{
		SessionID: sess.ID,
		Form: core.EntryForm{
			Date:          "2023-10-03",
			Description:   "Pendapatan rawat jalan",
			DebitAccount:  "1102",
			CreditAccount: "4101",
			Amount:        "75000000",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Current User", line.PostedBy)
	assert.Equal(t, "Piutang Pelayanan (AR)", line.DebitName)
	assert.Equal(t, "Pendapatan Layanan (BLU Revenue)", line.CreditName)
	assert.Equal(t, 3, ledger.Len())

	list, err := svc.ListJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, line.ID, list.Entries[0].ID)
	assert.Equal(t, "Kas (Cash)", list.Entries[1].DebitName)

	_, err = svc.PostJournalEntry(ctx, app.PostEntryRequest{SessionID: sess.ID, Form: core.EntryForm{DebitAccount: "1101", CreditAccount: "1101"}})
	assert.ErrorIs(t, err, core.ErrSameAccount)
	assert.Equal(t, 3, ledger.Len())
}

func TestAppService_Reports(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil)

	aging, err := svc.GetReceivablesAging(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ProvisionPolicy, aging.Policy)
	assert.Equal(t, "850000000", aging.NetReceivable.String())

	act, err := svc.GetActivity(ctx)
	require.NoError(t, err)
	assert.True(t, act.IsSurplus())

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts.Accounts, 9)
}

func TestAppService_SelectPatientClearsNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	summarizer := mock_ai.NewMockSummaryService(ctrl)
	summarizer.EXPECT().SummarizeNote(gomock.Any(), "catatan").Return("**Subjective:** ok")

	ctx := context.Background()
	svc, _ := newService(t, summarizer)
	sess, _ := svc.ResolveSession(ctx, "")

	_, err := svc.SelectPatient(ctx, sess.ID, "P001")
	require.NoError(t, err)
	_, err = svc.SummarizeNote(ctx, app.SummarizeRequest{SessionID: sess.ID, Note: "catatan"})
	require.NoError(t, err)

	same, err := svc.SelectPatient(ctx, sess.ID, "P001")
	require.NoError(t, err)
	assert.Equal(t, "catatan", same.LastNote)

	switched, err := svc.SelectPatient(ctx, sess.ID, "P002")
	require.NoError(t, err)
	assert.Equal(t, "P002", switched.SelectedPatientID)
	assert.Empty(t, switched.LastNote)
	assert.Empty(t, switched.LastSummary)

	_, err = svc.SelectPatient(ctx, sess.ID, "P999")
	assert.ErrorIs(t, err, core.ErrPatientNotFound)
}

func TestAppService_SummarizeNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	summarizer := mock_ai.NewMockSummaryService(ctrl)
	summarizer.EXPECT().
		SummarizeNote(gomock.Any(), "Pasien demam 2 hari").
		Return(ai.FallbackAPIError)

	ctx := context.Background()
	svc, _ := newService(t, summarizer)
	sess, _ := svc.ResolveSession(ctx, "")

	res, err := svc.SummarizeNote(ctx, app.SummarizeRequest{SessionID: sess.ID, Note: "Pasien demam 2 hari"})
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackAPIError, res.Summary)
	assert.Equal(t, ai.FallbackAPIError, res.Session.LastSummary)

	_, err = svc.SummarizeNote(ctx, app.SummarizeRequest{SessionID: sess.ID, Note: "   "})
	assert.ErrorIs(t, err, app.ErrEmptyNote)
}

func TestAppService_SummarizeNoteInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	unblock := make(chan struct{})

	summarizer := mock_ai.NewMockSummaryService(ctrl)
	summarizer.EXPECT().
		SummarizeNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, note string) string {
			close(started)
			<-unblock
			return "done"
		}).
		Times(1)

	ctx := context.Background()
	svc, _ := newService(t, summarizer)
	sess, _ := svc.ResolveSession(ctx, "")

	var wg sync.WaitGroup
	wg.Add(1)
	var first *app.SummaryResult
	go func() {
		defer wg.Done()
		first, _ = svc.SummarizeNote(ctx, app.SummarizeRequest{SessionID: sess.ID, Note: "first"})
	}()

	<-started
	_, err := svc.SummarizeNote(ctx, app.SummarizeRequest{SessionID: sess.ID, Note: "second"})
	assert.ErrorIs(t, err, app.ErrSummaryInProgress)

	close(unblock)
	wg.Wait()
	require.NotNil(t, first)
	assert.Equal(t, "done", first.Summary)
}
