// Package store owns the canonical, most-recent-first collection of knowledge
// records. The whole collection is the unit of persistence: every mutation
// rewrites the durable blob.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// DefaultKey is the durable key the collection is stored under.
const DefaultKey = "bdg_inova_plus_v2"

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the durable key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the random UUID generator for record ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store is the record store. It is safe for concurrent use.
type Store struct {
	blob   core.BlobStore
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	// opMu serializes mutate-then-persist so blobs are written in mutation order.
	opMu sync.Mutex

	mu            sync.RWMutex
	records       []core.Record
	lastPersisted []byte
	persists      int
	lastPersist   *time.Time

	subMu   sync.Mutex
	subs    map[int]func([]core.Record)
	nextSub int
}

// New creates a store over blob. Call Load to rehydrate it.
func New(blob core.BlobStore, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		key:    DefaultKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
		subs:   make(map[int]func([]core.Record)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the durable key the store writes to.
func (s *Store) Key() string {
	return s.key
}

// Load reads the durable blob and replaces the in-memory collection with it.
// An absent or unparseable blob yields an empty collection; the failure is
// logged, never returned.
func (s *Store) Load(ctx context.Context) []core.Record {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	records, raw := s.read(ctx)

	s.mu.Lock()
	s.records = records
	s.lastPersisted = raw
	snapshot := clone(s.records)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

func (s *Store) read(ctx context.Context) ([]core.Record, []byte) {
	data, err := s.blob.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("failed to read records, starting empty", "key", s.key, "error", err)
		}
		return []core.Record{}, nil
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("failed to parse records, starting empty", "key", s.key, "error", err)
		return []core.Record{}, nil
	}
	if records == nil {
		records = []core.Record{}
	}
	return records, data
}

// Persist serializes records and overwrites the durable blob. It does not
// touch the in-memory collection.
func (s *Store) Persist(ctx context.Context, records []core.Record) error {
	data, err := encode(records)
	if err != nil {
		return err
	}
	if err := s.blob.Store(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist records: %w", err)
	}

	s.mu.Lock()
	now := s.now()
	s.lastPersisted = data
	s.persists++
	s.lastPersist = &now
	s.mu.Unlock()
	return nil
}

func encode(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return data, nil
}

// Create builds a record from d and prepends it to the collection.
//
// The registration number is the collection length before creation plus one.
// After a deletion this reuses numbers already handed out; that is the
// established numbering and is kept as is.
//
// On a persistence failure the record stays in memory and is returned along
// with the error.
func (s *Store) Create(ctx context.Context, d core.Draft) (core.Record, error) {
	if !d.Kind.Valid() {
		return core.Record{}, fmt.Errorf("%w: %q", core.ErrInvalidKind, d.Kind)
	}
	if d.Lesson != nil && len(d.Lesson.FiveWhys) > core.MaxWhys {
		return core.Record{}, fmt.Errorf("%w: at most %d whys", core.ErrValidation, core.MaxWhys)
	}

	rec := core.Record{
		ID:          s.newID(),
		Kind:        d.Kind,
		Project:     d.Project,
		Author:      d.Author,
		Idea:        d.Idea,
		Explanation: d.Explanation,
		Date:        s.now().UTC().Truncate(time.Millisecond),
		Points:      d.Kind.Points(),
		Status:      core.StatusSubmitted,
	}
	rec.Media = append([]core.MediaItem{}, d.Media...)
	switch d.Kind {
	case core.KindInnovation:
		rec.Innovation = &core.InnovationDetails{}
		if d.Innovation != nil {
			*rec.Innovation = *d.Innovation
		}
	case core.KindLesson:
		rec.Lesson = &core.LessonDetails{}
		if d.Lesson != nil {
			*rec.Lesson = *d.Lesson
			if d.Lesson.FiveWhys != nil {
				rec.Lesson.FiveWhys = append([]string{}, d.Lesson.FiveWhys...)
			}
		}
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	rec.RegistrationNumber = len(s.records) + 1
	s.records = append([]core.Record{rec}, s.records...)
	snapshot := clone(s.records)
	s.mu.Unlock()

	s.logger.Info("record created",
		"id", rec.ID,
		"kind", rec.Kind,
		"registration_number", rec.RegistrationNumber,
		"points", rec.Points,
	)
	err := s.Persist(ctx, snapshot)
	s.notify(snapshot)
	return rec.Clone(), err
}

// Update merges p into the record with the given id and returns the new
// collection. An unknown id leaves the collection unchanged. The collection
// is persisted either way.
func (s *Store) Update(ctx context.Context, id string, p core.Patch) ([]core.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	found := false
	for i, r := range s.records {
		if r.ID != id {
			continue
		}
		updated, err := p.Apply(r)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.records[i] = updated
		found = true
		break
	}
	snapshot := clone(s.records)
	s.mu.Unlock()

	if found {
		s.logger.Info("record updated", "id", id)
	} else {
		s.logger.Debug("update of unknown record ignored", "id", id)
	}
	err := s.Persist(ctx, snapshot)
	s.notify(snapshot)
	return snapshot, err
}

// Remove deletes the record with the given id and returns the new
// collection. Removing an unknown id is a no-op. The collection is persisted
// either way.
func (s *Store) Remove(ctx context.Context, id string) ([]core.Record, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	kept := make([]core.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(s.records)
	s.records = kept
	snapshot := clone(s.records)
	s.mu.Unlock()

	if removed {
		s.logger.Info("record removed", "id", id)
	} else {
		s.logger.Debug("removal of unknown record ignored", "id", id)
	}
	err := s.Persist(ctx, snapshot)
	s.notify(snapshot)
	return snapshot, err
}

// Reload rehydrates the collection after the blob was overwritten by another
// session. The last writer wins; local state is replaced without merging.
// It reports whether the collection changed.
func (s *Store) Reload(ctx context.Context) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	records, raw := s.read(ctx)

	s.mu.Lock()
	unchanged := raw != nil && bytes.Equal(raw, s.lastPersisted)
	// An absent or corrupt blob reloads as empty; nothing to announce if
	// the collection already is.
	if raw == nil && len(s.records) == 0 {
		unchanged = true
	}
	if unchanged {
		s.mu.Unlock()
		return false
	}
	s.records = records
	s.lastPersisted = raw
	snapshot := clone(s.records)
	s.mu.Unlock()

	s.logger.Info("records reloaded from external write", "count", len(snapshot))
	s.notify(snapshot)
	return true
}

// Follow reloads the store on every change w reports for the store's key,
// until ctx is done.
func (s *Store) Follow(ctx context.Context, w core.Watchable) error {
	events, err := w.Watch(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to watch records: %w", err)
	}
	go func() {
		for e := range events {
			s.logger.Debug("durable store changed", "event", e.String())
			s.Reload(ctx)
		}
	}()
	return nil
}

// Records returns a snapshot of the collection, most recent first.
func (s *Store) Records() []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (core.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return core.Record{}, false
}

// Recent returns up to n of the most recent records.
func (s *Store) Recent(n int) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.records) {
		n = len(s.records)
	}
	if n < 0 {
		n = 0
	}
	return clone(s.records[:n])
}

// Filter returns the records of kind k matching query. See Matches.
func (s *Store) Filter(k core.Kind, query string) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Record{}
	for _, r := range s.records {
		if r.Kind == k && Matches(r, query) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Search returns the records of any kind matching query.
func (s *Store) Search(query string) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Record{}
	for _, r := range s.records {
		if Matches(r, query) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Matches reports whether the idea, project or author of r contains query,
// ignoring case. An empty query matches everything.
func Matches(r core.Record, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Idea), q) ||
		strings.Contains(strings.ToLower(r.Project), q) ||
		strings.Contains(strings.ToLower(r.Author), q)
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function unregisters it. fn runs on the mutating goroutine and
// must not call back into mutating methods.
func (s *Store) Subscribe(fn func([]core.Record)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(snapshot []core.Record) {
	s.subMu.Lock()
	fns := make([]func([]core.Record), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(clone(snapshot))
	}
}

func clone(records []core.Record) []core.Record {
	out := make([]core.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
