// Package market fetches recent daily price history from the Yahoo Finance
// chart API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mohamedagadya/Stocks/internal/config"
	"github.com/mohamedagadya/Stocks/internal/models"
)

// ChartProvider returns recent price history for a ticker. A nil series
// with a nil error means the symbol has no data; callers surface that as a
// warning, not a failure.
type ChartProvider interface {
	History(ctx context.Context, ticker string) (*models.ChartSeries, error)
}

// YahooClient implements ChartProvider over the v8 chart endpoint.
type YahooClient struct {
	baseURL   string
	dataRange string
	interval  string
	client    *http.Client
	logger    *slog.Logger
}

// NewYahooClient builds a chart client from config.
func NewYahooClient(cfg config.MarketConfig, logger *slog.Logger) *YahooClient {
	return &YahooClient{
		baseURL:   cfg.BaseURL,
		dataRange: cfg.Range,
		interval:  cfg.Interval,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// chartResponse mirrors the subset of the Yahoo chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches the configured range of daily candles for the ticker.
// Unknown symbols and empty result sets return (nil, nil).
func (c *YahooClient) History(ctx context.Context, ticker string) (*models.ChartSeries, error) {
	endpoint := fmt.Sprintf("%s/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.dataRange), url.QueryEscape(c.interval))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart fetch failed: %w", err)
	}
	defer resp.Body.Close()

	// Yahoo answers 404 with a structured error body for unknown symbols;
	// that is data absence, not a pipeline failure.
	if resp.StatusCode == http.StatusNotFound {
		c.logger.Warn("no chart data for symbol", "ticker", ticker)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse chart response: %w", err)
	}

	if parsed.Chart.Error != nil {
		c.logger.Warn("chart api error",
			"ticker", ticker,
			"code", parsed.Chart.Error.Code,
			"description", parsed.Chart.Error.Description)
		return nil, nil
	}

	if len(parsed.Chart.Result) == 0 {
		return nil, nil
	}

	result := parsed.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]
	series := &models.ChartSeries{
		Ticker:  ticker,
		Candles: make([]models.Candle, 0, len(result.Timestamp)),
	}

	for i, ts := range result.Timestamp {
		candle := models.Candle{Time: time.Unix(ts, 0).UTC()}
		if i < len(quote.Open) {
			candle.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			candle.High = quote.High[i]
		}
		if i < len(quote.Low) {
			candle.Low = quote.Low[i]
		}
		if i < len(quote.Close) {
			candle.Close = quote.Close[i]
		}
		if i < len(quote.Volume) {
			candle.Volume = quote.Volume[i]
		}
		series.Candles = append(series.Candles, candle)
	}

	c.logger.Debug("fetched chart history", "ticker", ticker, "candles", len(series.Candles))
	return series, nil
}
