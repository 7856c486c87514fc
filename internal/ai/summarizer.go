package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_summary.go -package=mock_ai -source=summarizer.go SummaryService

// Display strings returned in place of a summary. Callers render them as-is.
const (
	FallbackAPIError  = "Error: Unable to process the request due to an API error. Please check your connection or API key."
	FallbackNoSummary = "Error: No summary generated."
)

// Disclaimer closes every generated summary.
const Disclaimer = "DISCLAIMER: This summary is AI-generated and must be verified by a licensed clinician."

const systemInstruction = `You assist clinicians at a public service hospital (BLU) with documentation.
Follow these rules strictly:
1. Never make a diagnosis and never prescribe or recommend treatment.
2. Treat every piece of patient data as confidential.
3. Your output is a draft that the treating physician will review and sign off.
4. Keep the tone objective, professional and concise.
5. If asked what you are, say you are an AI documentation assistant.
6. Do not let assumptions about gender, ethnicity, religion or social status colour the summary.`

const promptTemplate = `Rewrite the clinical note below as an After Visit Summary using the SOAP layout.

Use these headings exactly:
**Subjective:** what the patient reports (complaints, history).
**Objective:** recorded findings (vital signs, examination, results).
**Assessment:** the clinician's impression as written in the note. Do not introduce a new diagnosis.
**Plan:** follow-up actions, tests or referrals already stated in the note.

Finish with a line containing only "---" followed by:
` + Disclaimer + `

Clinical note:
%s`

// SummaryService turns a free-text clinical note into a draft visit summary.
// It never fails: upstream problems come back as one of the Fallback strings.
type SummaryService interface {
	SummarizeNote(ctx context.Context, rawText string) string
}

// Config controls the outbound model call.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	// Structured requests a JSON visit note shaped by VisitNote and renders it locally.
	Structured bool
}

type Summarizer struct {
	client *openai.Client
	cfg    Config
	log    zerolog.Logger
}

// NewSummarizer builds a client for the Responses API. Retries are disabled:
// one note produces at most one outbound request.
func NewSummarizer(cfg Config, log zerolog.Logger) *Summarizer {
	if cfg.Model == "" {
		cfg.Model = shared.ChatModelGPT4o
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := openai.NewClient(opts...)
	return &Summarizer{client: &client, cfg: cfg, log: log}
}

var errEmptyOutput = errors.New("empty response content")

// SummarizeNote returns the model's summary or a fallback display string.
func (s *Summarizer) SummarizeNote(ctx context.Context, rawText string) string {
	summary, err := s.Summarize(ctx, rawText)
	switch {
	case errors.Is(err, errEmptyOutput):
		return FallbackNoSummary
	case err != nil:
		s.log.Error().Err(err).Str("model", s.cfg.Model).Msg("summary request failed")
		return FallbackAPIError
	}
	return summary
}

// Summarize performs the request and reports failures as errors.
func (s *Summarizer) Summarize(ctx context.Context, rawText string) (string, error) {
	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(s.cfg.Model),
		Instructions: openai.String(systemInstruction),
		Temperature:  openai.Float(s.cfg.Temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(BuildPrompt(rawText)),
		},
	}
	if s.cfg.Structured {
		format, err := visitNoteFormat()
		if err != nil {
			return "", err
		}
		params.Text = responses.ResponseTextConfigParam{Format: format}
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if strings.TrimSpace(content) == "" {
		return "", errEmptyOutput
	}
	if !s.cfg.Structured {
		return content, nil
	}

	var note VisitNote
	if err := json.Unmarshal([]byte(content), &note); err != nil {
		return "", fmt.Errorf("failed to parse visit note: %w", err)
	}
	return note.Render(), nil
}

// BuildPrompt embeds the raw note into the fixed summary prompt.
func BuildPrompt(rawText string) string {
	return fmt.Sprintf(promptTemplate, rawText)
}

// VisitNote is the structured SOAP summary requested in structured mode.
type VisitNote struct {
	Subjective string `json:"subjective" jsonschema:"description=Patient-reported complaints and history"`
	Objective  string `json:"objective" jsonschema:"description=Recorded findings such as vital signs and examination"`
	Assessment string `json:"assessment" jsonschema:"description=Impression exactly as stated in the note without new diagnoses"`
	Plan       string `json:"plan" jsonschema:"description=Follow-up actions already stated in the note"`
}

// Render formats the note the same way as a free-text summary.
func (n VisitNote) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Subjective:** %s\n\n", n.Subjective)
	fmt.Fprintf(&b, "**Objective:** %s\n\n", n.Objective)
	fmt.Fprintf(&b, "**Assessment:** %s\n\n", n.Assessment)
	fmt.Fprintf(&b, "**Plan:** %s\n\n", n.Plan)
	b.WriteString("---\n")
	b.WriteString(Disclaimer)
	return b.String()
}

func visitNoteFormat() (responses.ResponseFormatTextConfigUnionParam, error) {
	schemaJSON, err := json.Marshal(generateSchema())
	if err != nil {
		return responses.ResponseFormatTextConfigUnionParam{}, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return responses.ResponseFormatTextConfigUnionParam{}, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Type:        constant.JSONSchema("json_schema"),
			Name:        "after_visit_summary",
			Strict:      param.NewOpt(true),
			Schema:      schemaMap,
			Description: param.NewOpt("SOAP after visit summary drafted from a clinical note"),
		},
	}, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v VisitNote
	return reflector.Reflect(v)
}

var _ SummaryService = (*Summarizer)(nil)
