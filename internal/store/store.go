// Package store persists small pieces of client state (auth token, theme,
// last created task id) between runs.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV is a string key/value store. Get returns ErrNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	KeyToken             = "token"
	KeyTheme             = "theme"
	KeyLastCreatedTaskID = "lastCreatedTaskId"
)
