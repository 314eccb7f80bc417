package api

import (
	"net/http"

	"log/slog"

	"github.com/mohamedagadya/Stocks/internal/symbols"
)

// SetupRoutes configures all API routes on the given mux.
func SetupRoutes(mux *http.ServeMux, runner TurnRunner, table *symbols.Table, transcript *Transcript, observer ResolutionObserver, logger *slog.Logger) {
	handler := NewHandler(runner, table, transcript, observer, logger)

	// Each endpoint answers its own CORS preflight; a catch-all OPTIONS
	// route under /api/ would never fire because ServeMux prefers the
	// more specific patterns.
	mux.HandleFunc("/api/chat", handler.HandleChat)
	mux.HandleFunc("/api/symbols", handler.SymbolsHandler)
	mux.HandleFunc("/api/info", handler.InfoHandler)
	mux.HandleFunc("/healthz", handler.HealthHandler)
}
