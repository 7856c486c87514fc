package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	webui "github.com/rimandagantarianto-gif/siarumahsakitrimanda/web"
	"github.com/rs/zerolog"
)

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins   string
	SessionSecret    string
	SessionTTL       time.Duration
	Production       bool
	SummaryRateLimit int
	Logger           zerolog.Logger
}

// Handler holds the ApplicationService, the chi router, and the page renderer.
type Handler struct {
	svc           app.ApplicationService
	router        chi.Router
	views         *renderer
	log           zerolog.Logger
	sessionSecret string
	sessionTTL    time.Duration
	secureCookies bool
	fileServer    http.Handler
	now           func() time.Time
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}
	views, err := newRenderer()
	if err != nil {
		panic("web/templates parse failed: " + err.Error())
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 8 * time.Hour
	}
	if opts.SummaryRateLimit <= 0 {
		opts.SummaryRateLimit = 10
	}

	h := &Handler{
		svc:           svc,
		views:         views,
		log:           opts.Logger,
		sessionSecret: opts.SessionSecret,
		sessionTTL:    opts.SessionTTL,
		secureCookies: opts.Production,
		fileServer:    http.FileServer(http.FS(staticFS)),
		now:           time.Now,
	}

	limitSummary := SummaryRateLimit(opts.SummaryRateLimit)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(opts.Logger))
	r.Use(Recoverer(opts.Logger))
	r.Use(CORS(opts.AllowedOrigins))
	r.Use(SecureHeaders(opts.Production))

	// ── Public ───────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Session-scoped routes ────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.Session)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Browser pages
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/financial", http.StatusFound)
		})
		r.Post("/session/role", h.roleFormSubmit)
		r.Get("/financial", h.financialPage)
		r.Post("/financial/journal", h.journalFormSubmit)
		r.Get("/clinical", h.clinicalPage)
		r.Post("/clinical/select", h.selectPatientSubmit)
		r.With(limitSummary).Post("/clinical/summary", h.summaryFormSubmit)

		// JSON API
		r.Get("/api/session", h.apiGetSession)
		r.Post("/api/session/role", h.apiSelectRole)
		r.Post("/api/session/patient", h.apiSelectPatient)
		r.Get("/api/accounts", h.apiListAccounts)
		r.Get("/api/reports/balance-sheet", h.apiBalanceSheet)
		r.Get("/api/reports/activity", h.apiActivity)
		r.Get("/api/reports/receivables", h.apiReceivables)
		r.Get("/api/journal-entries", h.apiListJournalEntries)
		r.Post("/api/journal-entries", h.apiPostJournalEntry)
		r.Get("/api/patients", h.apiSearchPatients)
		r.Get("/api/patients/{id}", h.apiGetPatient)
		r.With(limitSummary).Post("/api/clinical/summary", h.apiSummarize)
	})

	h.router = r
	return r
}

// health reports liveness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	writeJSON(w, response{Status: "ok", Time: h.now().UTC().Format(time.RFC3339)})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
