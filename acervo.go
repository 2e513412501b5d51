package acervo

import (
	"context"
	"log/slog"
	"time"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/internal/config"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/internal/platform"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
)

// Default locations looked up in the working directory.
const (
	DefaultVaultDir = platform.DefaultVaultDir
	ConfigFile      = platform.ConfigFile
)

// --- Types ---

// Portal is a wired session: durable store, record store, navigator and
// media capturer.
type Portal = platform.Portal

// Config holds file and environment settings.
type Config = config.Config

// --- Configuration ---

// Option defines a functional option for configuring a portal.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBlobStore injects a custom durable store.
func WithBlobStore(blob core.BlobStore) Option {
	return platform.WithBlobStore(blob)
}

// WithStorageKey overrides the durable key of the collection.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the vault directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatch controls reloading after external overwrites.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithForceTemp forces the vault into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return platform.WithIDGenerator(gen)
}

// WithConfirm sets the prompt used before deletions.
func WithConfirm(c navigator.Confirmer) Option {
	return platform.WithConfirm(c)
}

// WithWatcherErrorHandler registers a callback for watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithMediaConcurrency bounds concurrent reads in a media batch.
func WithMediaConcurrency(n int) Option {
	return platform.WithMediaConcurrency(n)
}

// WithMaxMediaBytes rejects attachments larger than n bytes.
func WithMaxMediaBytes(n int64) Option {
	return platform.WithMaxMediaBytes(n)
}

// --- Factory ---

// Open wires a session over the vault at uri.
func Open(ctx context.Context, uri string, opts ...Option) (*Portal, error) {
	return platform.Open(ctx, uri, opts...)
}

// Init prepares the durable store without loading anything.
func Init(ctx context.Context, uri string, opts ...Option) (core.BlobStore, error) {
	return platform.Init(ctx, uri, opts...)
}

// LoadConfig reads settings from path (optional) and the environment.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// OpenConfig opens a session from loaded settings. Extra options are
// applied last.
func OpenConfig(ctx context.Context, cfg *Config, opts ...Option) (*Portal, error) {
	uri, base := platform.FromConfig(cfg)
	return platform.Open(ctx, uri, append(base, opts...)...)
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual vault directory based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun reports whether the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding a vault or config file.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
