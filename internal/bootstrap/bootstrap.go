// Package bootstrap assembles the application service from configuration.
// Both entry points (cmd/app and cmd/server) share this wiring.
package bootstrap

import (
	"context"
	"time"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/config"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/rs/zerolog"
)

const purgeInterval = 5 * time.Minute

// Container holds the wired service. Sessions and Ledger are exposed for tests.
type Container struct {
	Service  app.ApplicationService
	Sessions *app.SessionStore
	Ledger   *core.Ledger
}

// New builds the service over the bundled demonstration data. The session
// purge loop runs until ctx is cancelled.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) *Container {
	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; summaries will return the fallback message")
	}

	chart := core.NewChartOfAccounts(core.SeedChartOfAccounts())
	ledger := core.NewLedger(chart, core.SeedJournalEntries()...)
	reporting := core.NewReportingService(core.NewSeedFinanceSource())
	patients := core.NewStaticDirectory(core.SeedPatients())

	summarizer := ai.NewSummarizer(ai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.SummaryModel,
		BaseURL:     cfg.SummaryBaseURL,
		Temperature: cfg.SummaryTemperature,
		Timeout:     cfg.SummaryTimeout,
		Structured:  cfg.SummaryStructured,
	}, log.With().Str("component", "summarizer").Logger())

	sessions := app.NewSessionStore(cfg.SessionTTL, cfg.DefaultActor)
	sessions.StartPurge(ctx, purgeInterval)

	svc := app.NewAppService(sessions, ledger, reporting, patients, summarizer, log)

	log.Info().
		Int("accounts", len(chart.Accounts())).
		Int("journal_entries", ledger.Len()).
		Str("summary_model", cfg.SummaryModel).
		Bool("summary_structured", cfg.SummaryStructured).
		Msg("application wired")

	return &Container{Service: svc, Sessions: sessions, Ledger: ledger}
}
