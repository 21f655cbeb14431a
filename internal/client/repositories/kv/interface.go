// Package kv provides the durable key-value store backing the session and
// progress state. Values are JSON-serialized strings; each mutation is a
// full-value write-through.
package kv

import (
	"context"
)

// Well-known keys of the durable store.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyProgress = "learningProgress"
	KeyCheckins = "checkins"
)

type Repository interface {
	// Get returns the stored value for key, or ("", false, nil) when absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
