package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohamedagadya/Stocks/internal/analysis"
	"github.com/mohamedagadya/Stocks/internal/api"
	"github.com/mohamedagadya/Stocks/internal/config"
	"github.com/mohamedagadya/Stocks/internal/extraction"
	"github.com/mohamedagadya/Stocks/internal/logging"
	"github.com/mohamedagadya/Stocks/internal/market"
	"github.com/mohamedagadya/Stocks/internal/metrics"
	"github.com/mohamedagadya/Stocks/internal/news"
	"github.com/mohamedagadya/Stocks/internal/router"
	"github.com/mohamedagadya/Stocks/internal/server"
	"github.com/mohamedagadya/Stocks/internal/symbols"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fallback().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logging.Fallback().Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting stocks service")

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// One Groq client shared by the extractor and the summarizer.
	groqClient := extraction.NewClient(cfg.Groq, logger)
	prompts := extraction.NewPromptTemplates()
	extractor := extraction.NewIntentExtractor(groqClient, prompts)
	summarizer := extraction.NewNewsSummarizer(groqClient, prompts)

	table := symbols.DefaultTable()
	logger.Info("symbol table loaded", "entries", table.Len())

	resolver := router.New(table, extractor, cfg.Router, logger)
	charts := market.NewYahooClient(cfg.Market, logger)
	newsClient := news.NewGoogleClient(cfg.News, logger)
	analyzer := analysis.New(resolver, charts, newsClient, summarizer, logger)

	transcript := api.NewTranscript()

	mux := http.NewServeMux()
	api.SetupRoutes(mux, analyzer, table, transcript, collector, logger)
	mux.Handle("/metrics", collector.Handler())

	handler := collector.InstrumentHandler(mux)

	srv := server.New(cfg.Server, logger, handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("stocks service started", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
