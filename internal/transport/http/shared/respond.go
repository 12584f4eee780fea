// Package shared holds the JSON envelope helpers every handler uses.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "inkind/pkg/domain-errors"
)

// ErrorBody is the JSON error envelope. Errors are scoped to the record the
// request touched; a failed transition never degrades any other endpoint.
type ErrorBody struct {
	Error    string            `json:"error"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError translates a coded error into the JSON envelope and matching
// HTTP status. Uncoded errors render as internal without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := ErrorBody{Error: string(code)}

	var coded *dErrors.Error
	if errors.As(err, &coded) {
		body.Message = coded.Message
		body.Metadata = coded.Metadata
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
