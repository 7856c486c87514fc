package repl_test

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/adapters/repl"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	mock_ai "github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai/mocks"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(summarizer ai.SummaryService) (app.ApplicationService, *core.Ledger) {
	ledger := core.NewLedger(core.NewChartOfAccounts(core.SeedChartOfAccounts()), core.SeedJournalEntries()...)
	return app.NewAppService(
		app.NewSessionStore(time.Hour, "Operator"),
		ledger,
		core.NewReportingService(core.NewSeedFinanceSource()),
		core.NewStaticDirectory(core.SeedPatients()),
		summarizer,
		zerolog.Nop(),
	), ledger
}

func run(t *testing.T, svc app.ApplicationService, script string) string {
	t.Helper()
	var out bytes.Buffer
	err := repl.Run(context.Background(), svc, bufio.NewReader(strings.NewReader(script)), &out)
	require.NoError(t, err)
	return out.String()
}

func TestREPL_Reports(t *testing.T) {
	svc, _ := newService(nil)
	out := run(t, svc, "/balance\n/activity\n/aging\n/journal\n/exit\n")

	assert.Contains(t, out, "STATEMENT OF FINANCIAL POSITION")
	assert.Contains(t, out, "Rp 1.500.000.000")
	assert.Contains(t, out, "SURPLUS")
	assert.Contains(t, out, "Allowance for Doubtful Accounts")
	assert.Contains(t, out, "Rp 70.000.000")
	assert.Contains(t, out, "Pembayaran BPJS cair")
}

func TestREPL_RoleGate(t *testing.T) {
	svc, _ := newService(nil)
	out := run(t, svc, "/role doctor\n/balance\n/role accountant\n/patients\n")

	assert.Contains(t, out, "Role switched to Doctor (Clinical Only).")
	assert.Contains(t, out, "Access Denied: Financial Data Restricted")
	assert.Contains(t, out, "Access Denied: Clinical Data Restricted")
	assert.NotContains(t, out, "STATEMENT OF FINANCIAL POSITION")
}

func TestREPL_PostWizard(t *testing.T) {
	svc, ledger := newService(nil)
	out := run(t, svc, "/post\n2023-10-06\nSetoran kas\n\n1101\n4101\n2500000\n/post\n2023-10-06\nSalah\n\n1101\n1101\n5\n")

	assert.Contains(t, out, "Entry posted: DR 1101 Kas (Cash) / CR 4101 Pendapatan Layanan (BLU Revenue)  Rp 2.500.000")
	assert.Contains(t, out, "debit and credit accounts must be different")
	require.Equal(t, 3, ledger.Len())

	first := ledger.Entries(context.Background())[0]
	assert.Equal(t, "Operator", first.PostedBy)
	assert.Equal(t, core.DefaultReference, first.Reference)
}

func TestREPL_NoteAndSummarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	summarizer := mock_ai.NewMockSummaryService(ctrl)
	summarizer.EXPECT().
		SummarizeNote(gomock.Any(), "Keluhan pusing\nTD 150/90").
		Return("**Subjective:** pusing")

	svc, _ := newService(summarizer)
	out := run(t, svc, "/summarize\n/patients wijaya\n/select p002\n/note\nKeluhan pusing\nTD 150/90\n.\n/summarize\n/exit\n")

	assert.Contains(t, out, "No note captured.")
	assert.Contains(t, out, "Wijaya, Siti Amina")
	assert.Contains(t, out, "Siti Amina Wijaya  (Patient/FHIR-R4/P002)")
	assert.Contains(t, out, "DRAFT AFTER VISIT SUMMARY")
	assert.Contains(t, out, "**Subjective:** pusing")
}

func TestREPL_UnknownCommand(t *testing.T) {
	svc, _ := newService(nil)
	out := run(t, svc, "hello\n/frobnicate\n/select P999\n")
	assert.Contains(t, out, "Commands start with '/'")
	assert.Contains(t, out, "Unknown command: /frobnicate")
	assert.Contains(t, out, "patient not found")
}
