// Package httpx provides JSON response helpers and the error-to-status
// mapping shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

type errorPayload struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes an error response in the `{"error": ...}` wire shape.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorPayload{Error: message})
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
