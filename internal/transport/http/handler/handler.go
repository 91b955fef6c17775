// Package handler composes the HTTP handlers served by the router.
package handler

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/pagesmith/internal/provider"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/tokenizer"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/handler/generate"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/handler/infra"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Generate *generate.Handlers
	Infra    *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
// store and tok may be nil.
func NewRepo(cache *ristretto.Cache[string, any], prov provider.Provider, store storage.Storage, tok tokenizer.Tokenizer, logger *slog.Logger) *Repo {
	startTime := time.Now()
	return &Repo{
		Generate: generate.New(prov, store, tok, logger),
		Infra:    infra.New(cache, store, logger, startTime),
	}
}
