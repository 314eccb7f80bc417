// Package logging builds the process-wide structured logger.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mohamedagadya/Stocks/internal/config"
)

// New constructs a slog.Logger for the configured format and level.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	return slog.New(handler), nil
}

// Fallback returns a JSON logger at default level, for reporting errors
// that happen before configuration is loaded.
func Fallback() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
