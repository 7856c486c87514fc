package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/web/templates/layouts"
)

// financial tabs
const (
	tabBalanceSheet = "balance-sheet"
	tabActivity     = "activity"
	tabReceivables  = "receivables"
	tabJournal      = "journal"
)

type financialView struct {
	Tab          string
	BalanceSheet *core.BalanceSheet
	Activity     *core.ActivitySummary
	Receivables  *app.ReceivablesResult
	Journal      *app.JournalListResult
	Accounts     []core.Account
	Form         core.EntryForm
	FormError    string
}

type clinicalView struct {
	Query      string
	Patients   []core.Patient
	SelectedID string
	Selected   *core.Patient
	Note       string
	Summary    string
	Error      string
}

// buildAppLayoutData constructs AppLayoutData from the request's session.
func (h *Handler) buildAppLayoutData(r *http.Request, title, activeNav string) layouts.AppLayoutData {
	d := layouts.AppLayoutData{
		Title:      title,
		ActiveNav:  activeNav,
		ReturnPath: r.URL.RequestURI(),
	}
	sess := sessionFromContext(r.Context())
	if sess == nil {
		return d
	}
	d.Actor = sess.Actor
	d.Role = string(sess.Role)
	d.RoleLabel = sess.Role.Label()
	for _, role := range core.Roles {
		d.Roles = append(d.Roles, layouts.RoleOption{
			Value:    string(role),
			Label:    role.Label(),
			Selected: role == sess.Role,
		})
	}
	return d
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if err := h.views.render(w, status, name, data); err != nil {
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("page render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// gatePage renders the access-denied page with HTTP 200 and returns false when
// the role may not view area.
func (h *Handler) gatePage(w http.ResponseWriter, r *http.Request, area core.Area, layout layouts.AppLayoutData) bool {
	res, err := h.svc.CheckAccess(r.Context(), sessionID(r), area)
	if err != nil {
		h.renderError(w, r, err)
		return false
	}
	if !res.Allowed {
		h.renderPage(w, r, http.StatusOK, "denied", pageData{Layout: layout, Data: res.Message})
		return false
	}
	return true
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := classifyError(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("page failed")
	}
	http.Error(w, http.StatusText(status), status)
}

// roleFormSubmit handles POST /session/role and redirects back to the
// submitting page.
func (h *Handler) roleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.SelectRole(r.Context(), sessionID(r), r.FormValue("role")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, safeReturnPath(r.FormValue("next")), http.StatusSeeOther)
}

// safeReturnPath only allows local absolute paths; anything else returns "/".
func safeReturnPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// ── Financial ─────────────────────────────────────────────────────────────────

func normalizeTab(tab string) string {
	switch tab {
	case tabActivity, tabReceivables, tabJournal:
		return tab
	}
	return tabBalanceSheet
}

// loadFinancialView gathers everything the financial page can show.
func (h *Handler) loadFinancialView(r *http.Request, tab string) (*financialView, error) {
	ctx := r.Context()
	v := &financialView{Tab: tab}

	var err error
	if v.BalanceSheet, err = h.svc.GetBalanceSheet(ctx); err != nil {
		return nil, err
	}
	if v.Activity, err = h.svc.GetActivity(ctx); err != nil {
		return nil, err
	}
	if v.Receivables, err = h.svc.GetReceivablesAging(ctx); err != nil {
		return nil, err
	}
	if v.Journal, err = h.svc.ListJournalEntries(ctx); err != nil {
		return nil, err
	}
	accounts, err := h.svc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	v.Accounts = accounts.Accounts
	v.Form = core.EntryForm{Date: h.now().Format("2006-01-02")}
	return v, nil
}

// financialPage handles GET /financial?tab=.
func (h *Handler) financialPage(w http.ResponseWriter, r *http.Request) {
	layout := h.buildAppLayoutData(r, "Financial", "financial")
	if !h.gatePage(w, r, core.AreaFinancial, layout) {
		return
	}
	view, err := h.loadFinancialView(r, normalizeTab(r.URL.Query().Get("tab")))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if r.URL.Query().Get("posted") == "1" {
		layout.FlashMsg = "Journal entry posted."
		layout.FlashKind = "success"
	}
	h.renderPage(w, r, http.StatusOK, "financial", pageData{Layout: layout, Data: view})
}

// journalFormSubmit handles POST /financial/journal. Success redirects to the
// journal tab; a validation failure re-renders the form with its values and 422.
func (h *Handler) journalFormSubmit(w http.ResponseWriter, r *http.Request) {
	layout := h.buildAppLayoutData(r, "Financial", "financial")
	layout.ReturnPath = "/financial?tab=" + tabJournal
	if !h.gatePage(w, r, core.AreaFinancial, layout) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form := core.EntryForm{
		Date:          r.PostFormValue("date"),
		Description:   r.PostFormValue("description"),
		Reference:     r.PostFormValue("reference"),
		DebitAccount:  r.PostFormValue("debit_account"),
		CreditAccount: r.PostFormValue("credit_account"),
		Amount:        r.PostFormValue("amount"),
	}

	_, err := h.svc.PostJournalEntry(r.Context(), app.PostEntryRequest{SessionID: sessionID(r), Form: form})
	if err == nil {
		http.Redirect(w, r, "/financial?tab="+tabJournal+"&posted=1", http.StatusSeeOther)
		return
	}

	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		h.renderError(w, r, err)
		return
	}
	view, loadErr := h.loadFinancialView(r, tabJournal)
	if loadErr != nil {
		h.renderError(w, r, loadErr)
		return
	}
	view.Form = form
	view.FormError = ve.Error()
	h.renderPage(w, r, http.StatusUnprocessableEntity, "financial", pageData{Layout: layout, Data: view})
}

// ── Clinical ──────────────────────────────────────────────────────────────────

func (h *Handler) loadClinicalView(r *http.Request, query string) (*clinicalView, error) {
	ctx := r.Context()
	res, err := h.svc.SearchPatients(ctx, query)
	if err != nil {
		return nil, err
	}
	v := &clinicalView{Query: res.Query, Patients: res.Patients}

	sess := sessionFromContext(ctx)
	if sess == nil {
		return v, nil
	}
	v.SelectedID = sess.SelectedPatientID
	v.Note = sess.LastNote
	v.Summary = sess.LastSummary
	if sess.SelectedPatientID != "" {
		if p, err := h.svc.GetPatient(ctx, sess.SelectedPatientID); err == nil {
			v.Selected = p
		}
	}
	return v, nil
}

// clinicalPage handles GET /clinical?q=.
func (h *Handler) clinicalPage(w http.ResponseWriter, r *http.Request) {
	layout := h.buildAppLayoutData(r, "Clinical", "clinical")
	if !h.gatePage(w, r, core.AreaClinical, layout) {
		return
	}
	view, err := h.loadClinicalView(r, r.URL.Query().Get("q"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, http.StatusOK, "clinical", pageData{Layout: layout, Data: view})
}

// selectPatientSubmit handles POST /clinical/select.
func (h *Handler) selectPatientSubmit(w http.ResponseWriter, r *http.Request) {
	layout := h.buildAppLayoutData(r, "Clinical", "clinical")
	if !h.gatePage(w, r, core.AreaClinical, layout) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.SelectPatient(r.Context(), sessionID(r), r.PostFormValue("patient_id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/clinical", http.StatusSeeOther)
}

// summaryFormSubmit handles POST /clinical/summary. The summary (or its
// fallback text) is rendered directly; an empty note or a summary already
// running for the session re-renders the page with an error message.
func (h *Handler) summaryFormSubmit(w http.ResponseWriter, r *http.Request) {
	layout := h.buildAppLayoutData(r, "Clinical", "clinical")
	layout.ReturnPath = "/clinical"
	if !h.gatePage(w, r, core.AreaClinical, layout) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	note := r.PostFormValue("note")

	res, err := h.svc.SummarizeNote(r.Context(), app.SummarizeRequest{SessionID: sessionID(r), Note: note})

	view, loadErr := h.loadClinicalView(r, "")
	if loadErr != nil {
		h.renderError(w, r, loadErr)
		return
	}
	view.Note = note

	switch {
	case err == nil:
		view.Summary = res.Summary
		h.renderPage(w, r, http.StatusOK, "clinical", pageData{Layout: layout, Data: view})
	case errors.Is(err, app.ErrEmptyNote), errors.Is(err, app.ErrSummaryInProgress):
		status, _ := classifyError(err)
		view.Summary = ""
		view.Error = err.Error()
		h.renderPage(w, r, status, "clinical", pageData{Layout: layout, Data: view})
	default:
		h.renderError(w, r, err)
	}
}
