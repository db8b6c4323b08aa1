// Package shared centralizes JSON rendering and domain error translation so
// every handler produces the same envelopes.
package shared

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	dErrors "biblio/pkg/domain-errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errorEnvelope is the wire shape of every failure response.
type errorEnvelope struct {
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
}

// WriteJSON renders v with the given status. Encoding failures are
// unrecoverable at this point; the status line is already committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded domain error into an HTTP response. Errors
// without a recognized code render as 500 with a generic message so internal
// detail never crosses the boundary.
func WriteError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	WriteJSON(w, status, errorEnvelope{
		Error:     message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func statusFor(err error) int {
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return http.StatusNotFound
	case dErrors.HasCode(err, dErrors.CodeConflict):
		return http.StatusConflict
	case dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeInvariantViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON request body into v, returning a coded validation
// error on malformed input.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeValidation, "invalid request body")
	}
	return nil
}
