package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jaekwang-park/taskapp/internal/middleware"
	"github.com/jaekwang-park/taskapp/internal/service"
)

const maxBodySize = 1 << 20 // 1 MB

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// inputMessage strips the sentinel prefix from a validation error.
func inputMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, inputMessage(err))
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, inputMessage(err))
	case errors.Is(err, service.ErrConflict):
		WriteError(w, http.StatusConflict, inputMessage(err))
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
