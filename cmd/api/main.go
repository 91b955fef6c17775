package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/pagesmith/internal/app"
	"github.com/mandalnilabja/pagesmith/internal/config"
	"github.com/mandalnilabja/pagesmith/internal/provider/deepseek"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/tokenizer"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/handler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pagesmith: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	printStartupBanner(cfg)

	// 2. Open the usage log if enabled
	var store storage.Storage
	if cfg.EnableUsageLog {
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		sqliteStore, err := storage.NewSQLiteStorage(config.DBPath())
		if err != nil {
			return fmt.Errorf("open usage log: %w", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore

		pruneUsageLog(store, cfg.RetentionDays, logger)
	}

	// 3. Initialize Cache for /api/usage
	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	defer cache.Close()

	// 4. Wire provider, handlers and router
	prov := deepseek.New(cfg)
	repo := handler.NewRepo(cache, prov, store, tokenizer.New(), logger)
	router := app.NewRouter(repo, &app.RouterOptions{
		AllowedOrigin:  cfg.AllowedOrigin,
		EnableUsageLog: cfg.EnableUsageLog,
		Logger:         logger,
	})

	// 5. Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer(cfg, router, logger)
	return srv.Run(ctx)
}

// pruneUsageLog drops generation logs older than the retention window.
func pruneUsageLog(store storage.Storage, days int, logger *slog.Logger) {
	if days <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	deleted, err := store.DeleteGenerationLogs(cutoff)
	if err != nil {
		logger.Warn("failed to prune usage log", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("pruned usage log", "deleted", deleted, "before", cutoff)
	}
}
