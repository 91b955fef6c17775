package types

import (
	"encoding/json"
	"net/http"
)

// Error messages returned to callers.
const (
	MsgGenerateFailed   = "Failed to generate code"
	MsgUpstreamFailed   = "Failed to fetch or empty response"
	MsgOriginNotAllowed = "Not allowed by CORS"
	MsgInvalidRequest   = "Request body must be a JSON object with a string prompt"
)

// ErrorResponse is the flat JSON error body used by this API: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
