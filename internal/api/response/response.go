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
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RejectionResponse is the payload for a validation-gate rejection. It
// carries the numbers a consumer needs to react without a second round trip.
type RejectionResponse struct {
	Error        string  `json:"error"`
	AvailableUSD float64 `json:"availableUsd"`
	RequestedUSD float64 `json:"requestedUsd"`
	ShortfallUSD float64 `json:"shortfallUsd"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, additional context, or nil.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}

// RespondRejection sends a 422 with the structured rejection payload so the
// caller can distinguish "your request was invalid" from "we could not
// evaluate your request".
func RespondRejection(w http.ResponseWriter, message string, available, requested float64) {
	RespondJSON(w, http.StatusUnprocessableEntity, RejectionResponse{
		Error:        message,
		AvailableUSD: available,
		RequestedUSD: requested,
		ShortfallUSD: requested - available,
	})
}
