package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mandalnilabja/pagesmith/internal/config"
	"github.com/mandalnilabja/pagesmith/internal/version"
)

func setupLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler).With("app", "pagesmith")
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Pagesmith %s - streaming HTML page generator\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Generate:   POST http://localhost%s/generate\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Upstream:   %s (%s)\n", cfg.UpstreamURL, cfg.Model)
	fmt.Fprintf(os.Stderr, "Origin:     %s\n", cfg.AllowedOrigin)
	if cfg.EnableUsageLog {
		fmt.Fprintf(os.Stderr, "Usage log:  %s\n", config.DBPath())
	}
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
