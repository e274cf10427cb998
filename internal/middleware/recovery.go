package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicWriter remembers whether the handler already started a response.
type panicWriter struct {
	http.ResponseWriter
	started bool
}

func (pw *panicWriter) WriteHeader(code int) {
	pw.started = true
	pw.ResponseWriter.WriteHeader(code)
}

func (pw *panicWriter) Write(b []byte) (int, error) {
	pw.started = true
	return pw.ResponseWriter.Write(b)
}

func (pw *panicWriter) Unwrap() http.ResponseWriter {
	return pw.ResponseWriter
}

// Recovery turns a handler panic into a 500 in the backend's error shape.
// A response that already started is left as it is.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pw := &panicWriter{ResponseWriter: w}
			defer func() {
				if v := recover(); v != nil {
					recovered(logger, pw, r, v)
				}
			}()
			next.ServeHTTP(pw, r)
		})
	}
}

func recovered(logger *slog.Logger, pw *panicWriter, r *http.Request, v any) {
	// Logging runs inside Recovery, so the id is only on the response header.
	requestID := GetRequestID(r.Context())
	if requestID == "" {
		requestID = pw.Header().Get(RequestIDHeader)
	}
	logger.Error("panic recovered",
		"error", v,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID,
		"stack", string(debug.Stack()),
	)
	if pw.started {
		return
	}

	body := map[string]any{
		"statusCode": http.StatusInternalServerError,
		"message":    "internal server error",
	}
	if requestID != "" {
		body["requestId"] = requestID
	}
	pw.Header().Set("Content-Type", "application/json")
	pw.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(pw).Encode(body); err != nil {
		logger.Error("failed to write recovery response", "error", err)
	}
}
