package store

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key         string     `json:"key"`
	Records     int        `json:"records"`
	Subscribers int        `json:"subscribers"`
	Persists    int        `json:"persists"`
	LastPersist *time.Time `json:"last_persist,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Key:         s.key,
		Records:     len(s.records),
		Persists:    s.persists,
		LastPersist: s.lastPersist,
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	state.Subscribers = len(s.subs)
	s.subMu.Unlock()
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "record-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
