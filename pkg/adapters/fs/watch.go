package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// Watch reports changes to the blob stored under key. Atomic writes replace
// the file, so the vault directory is watched and events are filtered by name.
// The returned channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	name, err := r.filename(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	out := make(chan core.Event)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, key, filepath.Base(name), out)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return out, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, key, base string, out chan<- core.Event) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			// Stack only when debugging; production logs stay short.
			if r.config.Logger.Enabled(ctx, slog.LevelDebug) {
				r.config.Logger.Error("watcher panic", "error", recovered, "stack", string(debug.Stack()))
			} else {
				r.config.Logger.Error("watcher panic", "error", recovered)
			}
			err = fmt.Errorf("watcher panic: %v", recovered)
		}
	}()

	timer := time.NewTimer(r.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending *core.Event
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			r.config.Logger.Debug("blob changed on disk", "key", key, "op", event.Op.String())
			pending = &core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()}
			timer.Reset(r.config.Debounce)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.reportWatchError(wErr)

		case <-timer.C:
			if pending == nil {
				continue
			}
			select {
			case out <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil
		}
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("fsnotify error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
