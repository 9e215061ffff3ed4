// Package metadata persists small client-side key/value pairs (the serialized
// user and the active session id) in SQLite or Redis.
package metadata

import (
	"context"
)

// Repository is a durable key/value store. Get returns (nil, nil) for an
// absent key. Delete removes all given keys at once and ignores absent ones.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
