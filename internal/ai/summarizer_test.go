package ai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/ai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseBody(text string) string {
	out, _ := json.Marshal(map[string]any{
		"id":         "resp_test",
		"object":     "response",
		"created_at": 1700000000,
		"status":     "completed",
		"model":      "gpt-4o",
		"output": []map[string]any{{
			"type":   "message",
			"id":     "msg_test",
			"status": "completed",
			"role":   "assistant",
			"content": []map[string]any{{
				"type":        "output_text",
				"text":        text,
				"annotations": []any{},
			}},
		}},
	})
	return string(out)
}

type captured struct {
	calls atomic.Int32
	body  atomic.Value
}

func newModelServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		c.body.Store(raw)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/responses"), "path %s", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func newSummarizer(baseURL string, structured bool) *ai.Summarizer {
	return ai.NewSummarizer(ai.Config{
		APIKey:      "test-key",
		Model:       "gpt-4o",
		BaseURL:     baseURL + "/v1/",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
		Structured:  structured,
	}, zerolog.Nop())
}

func TestSummarizeNote_Success(t *testing.T) {
	want := "**Subjective:** headache\n\n---\n" + ai.Disclaimer
	srv, c := newModelServer(t, http.StatusOK, responseBody(want))

	got := newSummarizer(srv.URL, false).SummarizeNote(context.Background(), "Pasien mengeluh sakit kepala 3 hari. TD 130/85.")
	assert.Equal(t, want, got)
	assert.Equal(t, int32(1), c.calls.Load())

	var req map[string]any
	require.NoError(t, json.Unmarshal(c.body.Load().([]byte), &req))
	assert.Equal(t, "gpt-4o", req["model"])
	assert.InDelta(t, 0.2, req["temperature"], 1e-9)
	assert.Contains(t, req["instructions"], "Never make a diagnosis")
	assert.Contains(t, req["input"], "Pasien mengeluh sakit kepala 3 hari. TD 130/85.")
	assert.Contains(t, req["input"], "**Assessment:**")
}

func TestSummarizeNote_UpstreamError(t *testing.T) {
	srv, c := newModelServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)

	got := newSummarizer(srv.URL, false).SummarizeNote(context.Background(), "note")
	assert.Equal(t, ai.FallbackAPIError, got)
	assert.Equal(t, int32(1), c.calls.Load(), "no retries")
}

func TestSummarizeNote_RequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	s := ai.NewSummarizer(ai.Config{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: srv.URL + "/v1/",
		Timeout: 100 * time.Millisecond,
	}, zerolog.Nop())

	start := time.Now()
	got := s.SummarizeNote(context.Background(), "note")
	assert.Equal(t, ai.FallbackAPIError, got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSummarizeNote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got := newSummarizer(url, false).SummarizeNote(context.Background(), "note")
	assert.Equal(t, ai.FallbackAPIError, got)
}

func TestSummarizeNote_EmptyOutput(t *testing.T) {
	srv, _ := newModelServer(t, http.StatusOK, responseBody(""))

	got := newSummarizer(srv.URL, false).SummarizeNote(context.Background(), "note")
	assert.Equal(t, ai.FallbackNoSummary, got)
}

func TestSummarizeNote_Structured(t *testing.T) {
	note := `{"subjective":"Nyeri dada","objective":"TD 140/90","assessment":"Sesuai catatan","plan":"Kontrol 1 minggu"}`
	srv, c := newModelServer(t, http.StatusOK, responseBody(note))

	got := newSummarizer(srv.URL, true).SummarizeNote(context.Background(), "note")
	assert.True(t, strings.HasPrefix(got, "**Subjective:** Nyeri dada"))
	assert.Contains(t, got, "**Plan:** Kontrol 1 minggu")
	assert.True(t, strings.HasSuffix(got, ai.Disclaimer))

	var req map[string]any
	require.NoError(t, json.Unmarshal(c.body.Load().([]byte), &req))
	text, ok := req["text"].(map[string]any)
	require.True(t, ok)
	format, ok := text["format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "after_visit_summary", format["name"])
}

func TestSummarizeNote_StructuredMalformed(t *testing.T) {
	srv, _ := newModelServer(t, http.StatusOK, responseBody("not json"))

	got := newSummarizer(srv.URL, true).SummarizeNote(context.Background(), "note")
	assert.Equal(t, ai.FallbackAPIError, got)
}

func TestBuildPrompt(t *testing.T) {
	p := ai.BuildPrompt("raw note text")
	assert.Contains(t, p, "After Visit Summary")
	assert.Contains(t, p, ai.Disclaimer)
	assert.True(t, strings.HasSuffix(p, "raw note text"))
}
