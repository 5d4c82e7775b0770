package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashchart/pkg/errors"
)

// StatusFor maps an error to an HTTP status code. Errors without a code are
// internal errors.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.IsInvalid(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteError writes err as a JSON error body with the status from
// [StatusFor]. Internal errors are logged and their details withheld.
func WriteError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status := StatusFor(err)
	body := errorBody{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
		if body.Code == "" || body.Code == string(errors.ErrCodeInternal) {
			body = errorBody{Error: http.StatusText(status), Code: string(errors.ErrCodeInternal)}
		}
	}
	WriteJSON(w, logger, status, body)
}

// WriteJSON writes v as an indented JSON response.
func WriteJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}
