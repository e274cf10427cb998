package api

import (
	"fmt"
	"net/http"
)

// Result is the outcome of every remote operation. Callers branch on
// StatusCode (or OK); no operation returns a Go error.
type Result[T any] struct {
	StatusCode int
	Data       T
	Message    string
}

func (r Result[T]) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil on success and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{StatusCode: r.StatusCode, Message: r.Message}
}

type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func failure[T any](status int, message string) Result[T] {
	if message == "" {
		message = http.StatusText(status)
	}
	return Result[T]{StatusCode: status, Message: message}
}
