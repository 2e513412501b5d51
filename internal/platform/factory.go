package platform

import (
	"context"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/store"
)

// Portal bundles the wired components of one session.
type Portal struct {
	Blob      core.BlobStore
	Store     *store.Store
	Navigator *navigator.Navigator
	Capturer  *media.Capturer

	cancel context.CancelFunc
}

// Open wires a session: durable store, record store (loaded), navigator and
// media capturer. With watching enabled and a watchable adapter the store
// follows external overwrites until Close.
//
//	p, err := platform.Open(ctx, ".acervo", platform.WithAdapter("fs"))
func Open(ctx context.Context, uri string, opts ...Option) (*Portal, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	blob, err := initBlob(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithKey(o.storageKey),
		store.WithLogger(o.logger),
		store.WithClock(o.now),
		store.WithIDGenerator(o.newID),
	}
	st := store.New(blob, storeOpts...)
	st.Load(ctx)

	navOpts := []navigator.Option{navigator.WithLogger(o.logger)}
	if o.confirm != nil {
		navOpts = append(navOpts, navigator.WithConfirm(o.confirm))
	}

	p := &Portal{
		Blob:      blob,
		Store:     st,
		Navigator: navigator.New(st, navOpts...),
		Capturer: media.NewCapturer(
			media.WithLogger(o.logger),
			media.WithIDGenerator(o.newID),
			media.WithConcurrency(o.concurrency),
			media.WithMaxBytes(o.maxBytes),
		),
	}

	if w, ok := blob.(core.Watchable); ok && o.watch {
		watchCtx, cancel := context.WithCancel(ctx)
		if err := st.Follow(watchCtx, w); err != nil {
			cancel()
			if o.logger != nil {
				o.logger.Warn("external changes will not be followed", "error", err)
			}
		} else {
			p.cancel = cancel
		}
	}
	return p, nil
}

// Close stops following external changes.
func (p *Portal) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}
