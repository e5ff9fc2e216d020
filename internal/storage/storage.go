// Package storage persists the session cache in a local SQLite database.
// It holds nothing but a handful of key/value rows; the token and identity
// rows are always written and cleared together by the session manager.
package storage

import (
	"context"
	"errors"
)

// ErrLocalDataNotAvailable reports that the local cache cannot be read or
// written.
var ErrLocalDataNotAvailable = errors.New("local data unavailable")

// Repository is the key/value contract of the session cache.
type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
