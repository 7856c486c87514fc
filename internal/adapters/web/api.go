package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
)

// gate writes the access-denied payload with HTTP 200 and returns false when
// the session's role may not view area.
func (h *Handler) gate(w http.ResponseWriter, r *http.Request, area core.Area) bool {
	res, err := h.svc.CheckAccess(r.Context(), sessionID(r), area)
	if err != nil {
		h.writeServiceError(w, r, err)
		return false
	}
	if !res.Allowed {
		writeJSON(w, res)
		return false
	}
	return true
}

// apiGetSession handles GET /api/session.
func (h *Handler) apiGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, sessionFromContext(r.Context()))
}

// apiSelectRole handles POST /api/session/role.
func (h *Handler) apiSelectRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.SelectRole(r.Context(), sessionID(r), req.Role)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess)
}

// apiSelectPatient handles POST /api/session/patient.
func (h *Handler) apiSelectPatient(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaClinical) {
		return
	}
	var req struct {
		PatientID string `json:"patient_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.svc.SelectPatient(r.Context(), sessionID(r), req.PatientID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess)
}

func (h *Handler) apiListAccounts(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	res, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiBalanceSheet(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	bs, err := h.svc.GetBalanceSheet(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, bs)
}

func (h *Handler) apiActivity(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	act, err := h.svc.GetActivity(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	type response struct {
		*core.ActivitySummary
		IsSurplus bool `json:"is_surplus"`
	}
	writeJSON(w, response{ActivitySummary: act, IsSurplus: act.IsSurplus()})
}

func (h *Handler) apiReceivables(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	res, err := h.svc.GetReceivablesAging(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiListJournalEntries(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	res, err := h.svc.ListJournalEntries(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// journalEntryBody accepts amount as either a JSON number or a JSON string.
type journalEntryBody struct {
	core.EntryForm
	Amount json.RawMessage `json:"amount"`
}

func (b journalEntryBody) form() core.EntryForm {
	form := b.EntryForm
	var s string
	if err := json.Unmarshal(b.Amount, &s); err == nil {
		form.Amount = s
	} else {
		form.Amount = string(b.Amount)
	}
	return form
}

// apiPostJournalEntry handles POST /api/journal-entries. The body uses the
// entry form field names.
func (h *Handler) apiPostJournalEntry(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaFinancial) {
		return
	}
	var body journalEntryBody
	if !decodeJSON(w, r, &body) {
		return
	}
	form := body.form()
	line, err := h.svc.PostJournalEntry(r.Context(), app.PostEntryRequest{SessionID: sessionID(r), Form: form})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, line)
}

// apiSearchPatients handles GET /api/patients?q=.
func (h *Handler) apiSearchPatients(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaClinical) {
		return
	}
	res, err := h.svc.SearchPatients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiGetPatient(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaClinical) {
		return
	}
	p, err := h.svc.GetPatient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// apiSummarize handles POST /api/clinical/summary. A summary already running
// for this session yields 409; model failures still return 200 with the
// fallback text in summary.
func (h *Handler) apiSummarize(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, core.AreaClinical) {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.SummarizeNote(r.Context(), app.SummarizeRequest{SessionID: sessionID(r), Note: req.Note})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
