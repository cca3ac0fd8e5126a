package handlers

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes body as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteError writes a standardised JSON failure envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	_ = WriteJSON(w, status, map[string]string{
		"type":   "FAILURE",
		"reason": msg,
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// NotFound renders unknown routes as a failure envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed renders unsupported methods as a failure envelope.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
