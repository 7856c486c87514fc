// verify-summarizer sends one sample clinical note to the configured model
// and prints the draft, exiting non-zero on any API failure.
//
// Usage: go run ./cmd/verify-summarizer
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/config"
)

const sampleNote = `Pt 45yo M c/o persistent cough x2 wks, worse at night.
No fever. Lungs clear on auscultation, SpO2 98% RA.
Likely post-viral cough. Start dextromethorphan 15mg PRN, return if SOB or fever.`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := config.NewLoggerTo(cfg, os.Stderr)

	if cfg.OpenAIAPIKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY not set")
	}

	summarizer := ai.NewSummarizer(ai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.SummaryModel,
		BaseURL:     cfg.SummaryBaseURL,
		Temperature: cfg.SummaryTemperature,
		Timeout:     cfg.SummaryTimeout,
		Structured:  cfg.SummaryStructured,
	}, log)

	fmt.Printf("SUMMARIZING NOTE (model %s, structured %t)\n\n%s\n", cfg.SummaryModel, cfg.SummaryStructured, sampleNote)

	summary, err := summarizer.Summarize(context.Background(), sampleNote)
	if err != nil {
		log.Fatal().Err(err).Msg("summarize")
	}

	fmt.Printf("\n--- DRAFT ---\n%s\n", summary)
}
