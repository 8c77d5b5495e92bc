// Package kv provides the key/value stores backing the credential tiers:
// SQL (durable), Redis and in-memory (session), an encrypting wrapper and
// the tier chain that consults them in priority order.
package kv

import "context"

// Store is a byte-valued key/value store. Get returns (nil, nil) when the
// key is absent. Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Initializer is implemented by stores that can atomically write a value
// only when the key is absent. It returns whatever value the key holds
// afterwards.
type Initializer interface {
	SetIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
