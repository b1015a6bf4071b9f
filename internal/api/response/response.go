// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses and standardized error responses.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent.
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondCached is RespondJSON with a Cache-Control directive for shared caches.
//
// Example:
//
//	response.RespondCached(w, http.StatusOK, "s-maxage=60, stale-while-revalidate=300", body)
func RespondCached(w http.ResponseWriter, status int, cacheControl string, data any) {
	w.Header().Set("Cache-Control", cacheControl)
	RespondJSON(w, status, data)
}

// RespondError sends a structured error response with the given status code.
// The message is what API clients match on; details is optional context and
// is omitted when nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "Invalid mode: fast", nil)
//	response.RespondError(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
