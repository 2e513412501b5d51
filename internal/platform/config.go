package platform

import "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/internal/config"

// FromConfig translates loaded settings into the vault uri and options.
func FromConfig(cfg *config.Config) (string, []Option) {
	return cfg.DataDir, []Option{
		WithAdapter(cfg.Adapter),
		WithStorageKey(cfg.StorageKey),
		WithReadOnly(cfg.ReadOnly),
		WithWatch(cfg.Watch),
	}
}
