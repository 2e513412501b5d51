// Package navigator implements the screen state machine and routes form
// submissions and deletions to the record store.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/store"
)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithConfirm sets the Confirmer used when Delete is given none. Without
// it deletions are declined.
func WithConfirm(c Confirmer) Option {
	return func(n *Navigator) {
		if c != nil {
			n.confirm = c
		}
	}
}

// Navigator holds the active screen. It starts on Home and is not persisted.
type Navigator struct {
	store   *store.Store
	logger  *slog.Logger
	confirm Confirmer

	mu      sync.RWMutex
	current Screen

	subMu   sync.Mutex
	subs    map[int]func(Screen)
	nextSub int
}

// New creates a navigator over s.
func New(s *store.Store, opts ...Option) *Navigator {
	n := &Navigator{
		store:   s,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		confirm: Answer(false),
		current: Home{},
		subs:    make(map[int]func(Screen)),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the active screen.
func (n *Navigator) Current() Screen {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Mode returns the active mode.
func (n *Navigator) Mode() Mode {
	return n.Current().Mode()
}

// Subscribe registers fn to be called with every new screen. The returned
// function unregisters it.
func (n *Navigator) Subscribe(fn func(Screen)) (cancel func()) {
	n.subMu.Lock()
	defer n.subMu.Unlock()
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Navigator) set(s Screen) {
	n.mu.Lock()
	from := n.current
	n.current = s
	n.mu.Unlock()

	n.logger.Debug("screen changed", "from", from.Mode(), "to", s.Mode())

	n.subMu.Lock()
	fns := make([]func(Screen), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subMu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// NavigateToList shows the list of kind k.
func (n *Navigator) NavigateToList(k core.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidKind, k)
	}
	n.set(List{Kind: k})
	return nil
}

// OpenDetail shows r.
func (n *Navigator) OpenDetail(r core.Record) {
	n.set(Detail{Record: r.Clone()})
}

// OpenRanking shows the ranking.
func (n *Navigator) OpenRanking() {
	n.set(Profile{})
}

// StartCreate opens an empty form for kind k.
func (n *Navigator) StartCreate(k core.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidKind, k)
	}
	n.set(Create{Kind: k})
	return nil
}

// StartEdit opens the form for the record shown in detail.
func (n *Navigator) StartEdit() error {
	d, ok := n.Current().(Detail)
	if !ok {
		return fmt.Errorf("%w: edit from %s", core.ErrInvalidTransition, n.Mode())
	}
	n.set(Edit{Record: d.Record})
	return nil
}

// Form returns a form matching the active create or edit screen.
func (n *Navigator) Form() (*form.Form, error) {
	switch s := n.Current().(type) {
	case Create:
		return form.New(s.Kind), nil
	case Edit:
		return form.FromRecord(s.Record), nil
	}
	return nil, fmt.Errorf("%w: no form on %s", core.ErrInvalidTransition, n.Mode())
}

// Submit validates f and creates or updates the record, then shows the
// list of the record's kind. A validation failure leaves the screen as is.
// A persistence failure still routes, since the record store kept the
// change in memory, and is returned.
func (n *Navigator) Submit(ctx context.Context, f *form.Form) (core.Record, error) {
	switch s := n.Current().(type) {
	case Create:
		if f.Kind != s.Kind {
			return core.Record{}, fmt.Errorf("%w: form kind %q on create %q", core.ErrInvalidTransition, f.Kind, s.Kind)
		}
		d, err := f.Draft()
		if err != nil {
			return core.Record{}, err
		}
		rec, err := n.store.Create(ctx, d)
		n.set(List{Kind: rec.Kind})
		return rec, err

	case Edit:
		if f.EditingID != s.Record.ID {
			return core.Record{}, fmt.Errorf("%w: form for %q on edit %q", core.ErrInvalidTransition, f.EditingID, s.Record.ID)
		}
		p, err := f.Patch()
		if err != nil {
			return core.Record{}, err
		}
		_, err = n.store.Update(ctx, s.Record.ID, p)
		if errors.Is(err, core.ErrInvalidStatus) || errors.Is(err, core.ErrValidation) {
			return core.Record{}, err
		}
		rec, ok := n.store.Get(s.Record.ID)
		if !ok {
			// Deleted elsewhere while editing.
			rec = s.Record
		}
		n.set(List{Kind: s.Record.Kind})
		return rec, err
	}
	return core.Record{}, fmt.Errorf("%w: submit from %s", core.ErrInvalidTransition, n.Mode())
}

// Cancel abandons the form and returns home.
func (n *Navigator) Cancel() {
	n.set(Home{})
}

// Back leaves the detail screen for the list of the record's kind.
func (n *Navigator) Back() error {
	d, ok := n.Current().(Detail)
	if !ok {
		return fmt.Errorf("%w: back from %s", core.ErrInvalidTransition, n.Mode())
	}
	n.set(List{Kind: d.Record.Kind})
	return nil
}

// Delete asks c (or the configured Confirmer when c is nil) and, if
// confirmed, removes the record. When the detail screen is active it then
// returns home. It reports whether the deletion went ahead.
func (n *Navigator) Delete(ctx context.Context, id string, c Confirmer) (bool, error) {
	if c == nil {
		c = n.confirm
	}
	if !c.Confirm(ctx, DeletePrompt) {
		n.logger.Debug("deletion declined", "id", id)
		return false, nil
	}
	_, err := n.store.Remove(ctx, id)
	if _, ok := n.Current().(Detail); ok {
		n.set(Home{})
	}
	return true, err
}

// Tab jumps to a top-level screen.
func (n *Navigator) Tab(m Mode) error {
	switch m {
	case ModeHome:
		n.set(Home{})
	case ModeInnovationList:
		n.set(List{Kind: core.KindInnovation})
	case ModeLessonList:
		n.set(List{Kind: core.KindLesson})
	case ModeSearch:
		n.set(Search{})
	case ModeProfile:
		n.set(Profile{})
	default:
		return fmt.Errorf("%w: %q is not a tab", core.ErrInvalidTransition, m)
	}
	return nil
}

// SetQuery updates the filter of the active list or search screen.
func (n *Navigator) SetQuery(q string) error {
	switch s := n.Current().(type) {
	case List:
		s.Query = q
		n.set(s)
	case Search:
		s.Query = q
		n.set(s)
	default:
		return fmt.Errorf("%w: no query on %s", core.ErrInvalidTransition, n.Mode())
	}
	return nil
}

// Visible returns the records the active list or search screen shows.
func (n *Navigator) Visible() []core.Record {
	switch s := n.Current().(type) {
	case List:
		return n.store.Filter(s.Kind, s.Query)
	case Search:
		return n.store.Search(s.Query)
	}
	return []core.Record{}
}
