package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the normalized failure body. Clients read statusCode
// and message.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Envelope wraps query results.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteEnvelope(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    message,
	})
}
