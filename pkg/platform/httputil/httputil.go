// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers so every endpoint returns the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "staffdir/pkg/domain-errors"
)

// statusByCode maps domain error codes to transport statuses.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation: http.StatusBadRequest,
	dErrors.CodeBadRequest: http.StatusBadRequest,
	dErrors.CodeNotFound:   http.StatusNotFound,
	dErrors.CodeConflict:   http.StatusConflict,
	dErrors.CodeInternal:   http.StatusInternalServerError,
}

// errorBody is the JSON error envelope. Internal errors omit the description
// so store failures never leak to clients.
type errorBody struct {
	Error       string            `json:"error"`
	Description string            `json:"error_description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError translates a domain error into its status and JSON envelope.
// Non-domain errors are treated as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.Description = de.Message
			body.Fields = de.Fields
		}
	}
	WriteJSON(w, status, body)
}

// Decode reads the request body into dst, returning a bad_request domain
// error on malformed JSON.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
