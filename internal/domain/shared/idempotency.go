package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried write is not applied twice
type IdempotencyStore interface {
	// MarkProcessed marks a key as seen with a TTL
	// Returns true if the key was newly marked, false if it was already seen
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so the request can be retried, e.g. after the
	// first attempt failed. Releasing an unknown key is not an error.
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
