// Package shared centralizes JSON response helpers so every handler emits the
// same envelopes.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "praxis/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Uncoded errors map to a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	var de *dErrors.Error
	if errors.As(err, &de) {
		body["message"] = de.Message
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
