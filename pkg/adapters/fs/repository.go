// Package fs implements core.BlobStore on the local filesystem. Each key is
// one JSON file inside the vault directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// Extension is appended to every key to form its filename.
const Extension = ".json"

// Config holds the configuration for the filesystem blob store.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger

	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)

	// Debounce coalesces bursts of filesystem events for the same key.
	// Zero means 50ms.
	Debounce time.Duration
}

// Repository implements core.BlobStore and core.Watchable.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	writes        int
	lastWrite     *time.Time
}

// NewRepository creates a new filesystem-backed blob store.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Debounce == 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the vault directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

func (r *Repository) filename(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(r.Path, key+Extension), nil
}

// Load reads the blob stored under key.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	name, err := r.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Store atomically replaces the blob stored under key.
func (r *Repository) Store(ctx context.Context, key string, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	name, err := r.filename(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	r.mu.Lock()
	now := time.Now()
	r.writes++
	r.lastWrite = &now
	r.mu.Unlock()

	r.config.Logger.Debug("blob written", "key", key, "bytes", len(data))
	return nil
}

var (
	_ core.BlobStore = (*Repository)(nil)
	_ core.Watchable = (*Repository)(nil)
)
