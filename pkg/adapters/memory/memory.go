// Package memory implements an in-process core.BlobStore. Values live only as
// long as the process; sessions sharing one Repository observe each other's
// writes through Watch.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// Repository is a mutex-guarded map of keys to blobs.
type Repository struct {
	mu       sync.RWMutex
	blobs    map[string][]byte
	watchers map[string][]chan core.Event
	readOnly bool
}

// NewRepository creates an empty in-memory blob store.
func NewRepository() *Repository {
	return &Repository{
		blobs:    make(map[string][]byte),
		watchers: make(map[string][]chan core.Event),
	}
}

// Seed returns a store preloaded with the given blobs, optionally read-only.
func Seed(blobs map[string][]byte, readOnly bool) *Repository {
	r := NewRepository()
	for k, v := range blobs {
		r.blobs[k] = append([]byte(nil), v...)
	}
	r.readOnly = readOnly
	return r
}

// Load returns a copy of the blob stored under key.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Store replaces the blob under key and notifies watchers of that key.
func (r *Repository) Store(ctx context.Context, key string, data []byte) error {
	if r.readOnly {
		return core.ErrReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.blobs[key]
	r.blobs[key] = append([]byte(nil), data...)

	e := core.Event{Type: core.EventModify, Key: key, Timestamp: time.Now().Unix()}
	if !existed {
		e.Type = core.EventCreate
	}
	for _, ch := range r.watchers[key] {
		// Slow watchers miss events rather than stall writers.
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Watch emits an event for every Store on key.
func (r *Repository) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	ch := make(chan core.Event, 16)

	r.mu.Lock()
	r.watchers[key] = append(r.watchers[key], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		list := r.watchers[key]
		for i, c := range list {
			if c == ch {
				r.watchers[key] = append(list[:i], list[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

var (
	_ core.BlobStore = (*Repository)(nil)
	_ core.Watchable = (*Repository)(nil)
)
