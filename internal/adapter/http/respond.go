package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/couchcryptid/indyradio-service/internal/questionnaire"
	"github.com/couchcryptid/indyradio-service/internal/validation"
	"github.com/goccy/go-json"
)

const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeIncomplete       = "INCOMPLETE_PREFERENCES"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRateLimited      = "RATE_LIMITED"
	codeInternal         = "INTERNAL_ERROR"
)

// maxBodyBytes bounds request bodies; the largest one is a preference set.
const maxBodyBytes = 64 << 10

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message, Details: details}})
}

// writeDomainError maps service errors onto status codes.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		verr   *validation.Error
		ansErr *domain.InvalidAnswerError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, codeValidation, "request failed validation", verr.Fields)
	case errors.As(err, &ansErr):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error(), map[string]any{
			"field":   ansErr.Field,
			"allowed": domain.AnswerValues(ansErr.Field),
		})
	case errors.Is(err, domain.ErrIncompletePreferences):
		writeError(w, http.StatusConflict, codeIncomplete, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
	case errors.Is(err, catalog.ErrStationNotFound),
		errors.Is(err, questionnaire.ErrSessionNotFound),
		errors.Is(err, questionnaire.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error(), nil)
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error", nil)
	}
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid JSON body: "+err.Error(), nil)
		return false
	}
	return true
}
