package platform

import (
	"context"
	"fmt"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/adapters/fs"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/adapters/memory"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// Names shared with the config file.
const (
	DefaultVaultDir = ".acervo"
	ConfigFile      = "acervo.yaml"
)

// Init prepares the durable store selected by the options. The uri argument
// is adapter-specific: the vault directory for "fs", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.BlobStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initBlob(ctx, uri, o)
}

func initBlob(ctx context.Context, uri string, o *options) (core.BlobStore, error) {
	if o.blob != nil {
		return o.blob, nil
	}

	switch o.adapter {
	case "fs":
		repo := initFS(uri, o)
		if err := repo.Initialize(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case "memory":
		return memory.Seed(nil, o.readOnly), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS resolves the vault path and builds the filesystem adapter.
func initFS(path string, o *options) *fs.Repository {
	if path == "" {
		path = DefaultVaultDir
	}

	// Read-only runs cannot damage anything, so they skip the sandbox.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveVaultPath(path, useTemp)

	if o.logger != nil && useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (dev/test)", "original_path", path, "resolved_path", resolvedPath)
	}

	return fs.NewRepository(fs.Config{
		Path:         resolvedPath,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
}
