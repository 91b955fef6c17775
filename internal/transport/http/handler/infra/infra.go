// Package infra serves the status, health and usage endpoints.
package infra

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/pagesmith/internal/storage"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Cache     *ristretto.Cache[string, any]
	Storage   storage.Storage
	Logger    *slog.Logger
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
// store may be nil when usage logging is disabled.
func New(cache *ristretto.Cache[string, any], store storage.Storage, logger *slog.Logger, startTime time.Time) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		Cache:     cache,
		Storage:   store,
		Logger:    logger,
		StartTime: startTime,
	}
}
