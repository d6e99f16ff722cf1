package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a durable mapping of string keys to opaque byte values plus named
// integer counters.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Increment atomically adds one to the counter named key and returns the
	// new value. A counter that has never been incremented starts at zero, so
	// the first call returns 1.
	Increment(ctx context.Context, key string) (int64, error)
}
