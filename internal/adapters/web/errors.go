package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/app"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, r, errorResponse{Error: message, Code: code}, status)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, resp errorResponse, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp.RequestID = requestIDFromContext(r.Context())
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// classifyError maps a service error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, app.ErrEmptyNote):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case errors.Is(err, core.ErrUnknownRole):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, app.ErrSummaryInProgress):
		return http.StatusConflict, "SUMMARY_IN_PROGRESS"
	case errors.Is(err, core.ErrPatientNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, app.ErrSessionNotFound):
		return http.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// writeServiceError writes the JSON envelope for an ApplicationService error.
// Internal errors are logged and their detail is withheld from the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	resp := errorResponse{Error: err.Error(), Code: code}
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("request failed")
		resp.Error = "internal server error"
	}
	writeErrorResponse(w, r, resp, status)
}
