package types

import "context"

// Storage is a key/value store holding one serialized collection per key,
// the way the storefront used browser local storage. Writes replace the whole
// value; there are no partial updates and no transactions.
type Storage interface {
	// Get returns the value stored under key, or an error wrapping
	// storage.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

