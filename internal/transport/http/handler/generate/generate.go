// Package generate serves POST /generate: it opens a provider stream for the
// caller's prompt and relays the model's text fragments as they arrive.
package generate

import (
	"log/slog"

	"github.com/mandalnilabja/pagesmith/internal/provider"
	"github.com/mandalnilabja/pagesmith/internal/relay"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/tokenizer"
)

// Handlers holds the dependencies for the generate endpoint.
// Storage and Tokenizer are optional.
type Handlers struct {
	Provider  provider.Provider
	Relay     *relay.Relay
	Tokenizer tokenizer.Tokenizer
	Storage   storage.Storage
	Logger    *slog.Logger
}

// New creates a new instance of generate handlers.
func New(prov provider.Provider, store storage.Storage, tok tokenizer.Tokenizer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		Provider:  prov,
		Relay:     relay.New(logger),
		Tokenizer: tok,
		Storage:   store,
		Logger:    logger,
	}
}
