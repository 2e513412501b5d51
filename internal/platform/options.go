package platform

import (
	"log/slog"
	"time"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
)

// options holds the internal configuration for a portal.
type options struct {
	blob         core.BlobStore
	logger       *slog.Logger
	adapter      string
	storageKey   string
	readOnly     bool
	mustExist    bool
	watch        bool
	forceTemp    bool
	devSafety    bool
	now          func() time.Time
	newID        func() string
	confirm      navigator.Confirmer
	errorHandler func(error)
	concurrency  int
	maxBytes     int64
}

// Option defines a functional option for configuring a portal.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:     "fs",
		watch:       true,
		devSafety:   true,
		concurrency: 4,
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithBlobStore injects a custom durable store. The adapter option is then
// ignored.
func WithBlobStore(blob core.BlobStore) Option {
	return func(o *options) {
		o.blob = blob
	}
}

// WithStorageKey overrides the durable key of the collection.
func WithStorageKey(key string) Option {
	return func(o *options) {
		o.storageKey = key
	}
}

// WithReadOnly enables read-only mode. Every mutation still updates the
// session but fails to persist with core.ErrReadOnly; the vault directory
// is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist requires the vault directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithWatch controls reloading when another session overwrites the durable
// store. Enabled by default; only adapters implementing core.Watchable
// support it.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithForceTemp forces the vault into a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the vault is re-rooted into a temporary
// directory so development runs never touch real data.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the UUID generator for record and media ids.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// WithConfirm sets the prompt used before deletions. Without it deletions
// are declined.
func WithConfirm(c navigator.Confirmer) Option {
	return func(o *options) {
		o.confirm = c
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithMediaConcurrency bounds how many files a media batch reads at once.
func WithMediaConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMaxMediaBytes rejects attachments larger than n bytes. Zero means no
// limit.
func WithMaxMediaBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}
