// Package router orchestrates the two-stage symbol resolution pipeline:
// fuzzy lookup against the curated table first, language-model extraction
// as the fallback.
package router

import (
	"context"
	"log/slog"

	"github.com/mohamedagadya/Stocks/internal/config"
	"github.com/mohamedagadya/Stocks/internal/extraction"
	"github.com/mohamedagadya/Stocks/internal/models"
	"github.com/mohamedagadya/Stocks/internal/symbols"
)

// Router maps one free-text user turn to exactly one Decision. It holds no
// per-turn state; concurrent Route calls are independent and share only the
// immutable symbol table.
type Router struct {
	table            *symbols.Table
	extractor        extraction.Extractor
	threshold        int
	autoSuffixRepair bool
	logger           *slog.Logger
}

// New builds a router over the given table and extractor.
func New(table *symbols.Table, extractor extraction.Extractor, cfg config.RouterConfig, logger *slog.Logger) *Router {
	threshold := cfg.MatchThreshold
	if threshold <= 0 {
		threshold = symbols.DefaultThreshold
	}

	return &Router{
		table:            table,
		extractor:        extractor,
		threshold:        threshold,
		autoSuffixRepair: cfg.AutoSuffixRepair,
		logger:           logger,
	}
}

// Route resolves one user turn.
//
// The curated table is consulted first; on a hit the extractor is never
// invoked and the decision is tagged database-sourced. On a miss the
// extractor runs; its failure becomes an error decision surfaced verbatim,
// with no retry at this layer. When auto suffix repair is enabled the
// extractor's ticker goes through the exchange-inference heuristic before
// the decision is built.
func (r *Router) Route(ctx context.Context, userText string) models.Decision {
	match := symbols.Match(userText, r.table.All(), r.threshold)
	if match.Matched() {
		r.logger.Info("resolved from symbol table",
			"query", userText,
			"alias", match.Alias,
			"ticker", match.Ticker,
			"score", match.Score)
		return models.AnalyzeDecision(match.Ticker, match.Alias, models.SourceDatabase)
	}

	r.logger.Debug("symbol table miss, falling back to extractor",
		"query", userText,
		"best_score", match.Score)

	raw := r.extractor.Extract(ctx, userText)

	switch raw.Action {
	case models.ActionAnalyze:
		ticker := raw.Ticker
		if r.autoSuffixRepair {
			ticker = symbols.NormalizeTicker(ticker)
		}
		displayName := raw.SearchTerm
		if displayName == "" {
			displayName = ticker
		}
		r.logger.Info("resolved from model",
			"query", userText,
			"ticker", ticker,
			"display_name", displayName,
			"repaired", r.autoSuffixRepair)
		return models.AnalyzeDecision(ticker, displayName, models.SourceAI)

	case models.ActionChat:
		return models.ChatDecision(raw.Reply)

	default:
		r.logger.Warn("extraction failed", "query", userText, "message", raw.Reply)
		return models.ErrorDecision(raw.Reply)
	}
}
