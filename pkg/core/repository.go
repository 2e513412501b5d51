package core

import "context"

// BlobStore is the durable string-keyed blob store the record collection is
// written to. Every write replaces the whole value of the key.
type BlobStore interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Store overwrites the value stored under key.
	Store(ctx context.Context, key string, data []byte) error
}

// Watchable is implemented by blob stores that can report writes made by
// other processes sharing the same storage.
type Watchable interface {
	// Watch emits an Event every time key changes. The channel is closed when
	// ctx is done.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}
