// Package analysis runs the full per-turn pipeline: route the user text,
// then gather chart history and a news sentiment summary for analyze
// decisions.
package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mohamedagadya/Stocks/internal/extraction"
	"github.com/mohamedagadya/Stocks/internal/market"
	"github.com/mohamedagadya/Stocks/internal/models"
	"github.com/mohamedagadya/Stocks/internal/news"
	"github.com/mohamedagadya/Stocks/internal/router"
)

// Analyzer coordinates the router with the downstream collaborators. Chart
// and news absence are turn-level warnings; only the router itself can make
// the turn an error.
type Analyzer struct {
	router     *router.Router
	charts     market.ChartProvider
	news       news.Provider
	summarizer extraction.Summarizer
	logger     *slog.Logger
}

// New builds the analyzer.
func New(r *router.Router, charts market.ChartProvider, newsProvider news.Provider, summarizer extraction.Summarizer, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		router:     r,
		charts:     charts,
		news:       newsProvider,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Run resolves one user turn and, for analyze decisions, collects the chart
// series, headlines and sentiment summary. Chat and error decisions never
// touch the collaborators.
func (a *Analyzer) Run(ctx context.Context, userText string) models.TurnResult {
	result := models.TurnResult{
		TurnID:   uuid.NewString(),
		Decision: a.router.Route(ctx, userText),
	}

	if result.Decision.Action != models.ActionAnalyze {
		return result
	}

	ticker := result.Decision.Ticker
	displayName := result.Decision.DisplayName

	series, err := a.charts.History(ctx, ticker)
	if err != nil {
		a.logger.Warn("chart fetch failed", "ticker", ticker, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("مش لاقي بيانات للرمز %s", ticker))
	} else if series == nil || len(series.Candles) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("مش لاقي بيانات للرمز %s", ticker))
	} else {
		result.Chart = series
	}

	headlines, err := a.news.Search(ctx, displayName)
	if err != nil {
		a.logger.Warn("news fetch failed", "display_name", displayName, "error", err)
		result.Warnings = append(result.Warnings, "مفيش أخبار متاحة حالياً")
		return result
	}
	if len(headlines) == 0 {
		result.Warnings = append(result.Warnings, "مفيش أخبار متاحة حالياً")
		return result
	}
	result.Headlines = headlines

	summary, err := a.summarizer.Summarize(ctx, displayName, headlines)
	if err != nil {
		a.logger.Warn("summarization failed", "display_name", displayName, "error", err)
		result.Warnings = append(result.Warnings, "تعذر تلخيص الأخبار")
		return result
	}
	result.Summary = summary

	return result
}
