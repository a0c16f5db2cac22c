package cmd

import (
	"log/slog"
	"os"

	"github.com/templui/goaltracker/internal/config"
	"github.com/templui/goaltracker/internal/logger"
)

// loadConfig reads the same environment as the server.
// Logs go to stderr so command output stays clean.
func loadConfig() *config.Config {
	cfg := config.Load()
	slog.SetDefault(logger.New(os.Stderr, cfg.IsDevelopment(), cfg.SentryDSN))
	return cfg
}
