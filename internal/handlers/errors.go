package handlers

import (
	"net/http"

	"freshsilver-api/internal/services"
)

// MsgInvalidJSON is returned when the request body is not a JSON object of
// the expected shape
const MsgInvalidJSON = "Invalid JSON"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForKind maps a service error kind to its HTTP status
func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
