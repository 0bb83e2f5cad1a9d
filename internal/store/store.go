// Package store provides the durable keyed storage the session core relies
// on: a small key-value contract with swappable backends plus an encrypted
// wrapper for the higher-trust credential tier.
package store

import "context"

// Store is a durable keyed byte store. Set is an idempotent upsert of a
// single pair. Get reports absence through ok rather than an error. Delete
// removes any of the given keys and treats already-absent keys as a no-op.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Delete(ctx context.Context, keys ...string) error
}
