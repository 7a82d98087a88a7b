package tasks

import (
	"time"

	"github.com/mrlokans/hikam/internal/config"
)

// Config sizes the worker pool. Retry, timeout and retention policies are
// declared per queue by each task's Config method.
type Config struct {
	Workers int
	// ReleaseAfter returns claimed tasks to the queue when a worker dies.
	ReleaseAfter time.Duration
	// CleanupInterval is how often finished tasks past their retention are purged.
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// FromConfig overlays the application settings on the defaults.
func FromConfig(cfg config.Tasks) Config {
	out := DefaultConfig()
	if cfg.Workers > 0 {
		out.Workers = cfg.Workers
	}
	if cfg.ReleaseAfter > 0 {
		out.ReleaseAfter = cfg.ReleaseAfter
	}
	if cfg.CleanupInterval > 0 {
		out.CleanupInterval = cfg.CleanupInterval
	}
	return out
}
