package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/pagesmith/internal/transport/http/handler"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/middleware"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	// AllowedOrigin is the only browser origin admitted by CORS
	AllowedOrigin string
	// EnableUsageLog exposes the usage and log endpoints
	EnableUsageLog bool
	Logger         *slog.Logger
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /generate", repo.Generate.Generate)
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)

	if opts.EnableUsageLog {
		mux.HandleFunc("GET /api/usage", repo.Infra.UsageStats)
		mux.HandleFunc("GET /api/usage/daily", repo.Infra.DailyUsage)
		mux.HandleFunc("GET /api/logs", repo.Infra.GenerationLogs)
	}

	// Root returns JSON status; "/{$}" keeps it from matching every path
	mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)

	// Apply middleware chain (order: outer to inner)
	return middleware.Chain(mux,
		middleware.Recover(logger),
		middleware.CORS(opts.AllowedOrigin),
		middleware.RequestID,
		middleware.RequestLogger(logger),
	)
}
