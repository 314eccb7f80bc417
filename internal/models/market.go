package models

import "time"

// AliasEntry maps one human-entered alias to its exchange-qualified ticker.
// Aliases mix scripts and languages and are matched fuzzily, so they stay
// exactly as authored.
type AliasEntry struct {
	Alias  string `json:"alias"`
	Ticker string `json:"ticker"`
}

// MatchResult is the outcome of one fuzzy lookup against the symbol table.
// The zero value means no candidate reached the threshold.
type MatchResult struct {
	Alias  string `json:"alias,omitempty"`
	Score  int    `json:"score"`
	Ticker string `json:"ticker,omitempty"`
}

// Matched reports whether the lookup produced a usable alias.
func (m MatchResult) Matched() bool {
	return m.Alias != "" && m.Ticker != ""
}

// Candle is one day of OHLCV history for a ticker.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ChartSeries is the recent daily history for one ticker. The UI renders
// the close series and the latest close.
type ChartSeries struct {
	Ticker  string   `json:"ticker"`
	Candles []Candle `json:"candles"`
}

// LastClose returns the most recent closing price, or false when the series
// is empty.
func (s *ChartSeries) LastClose() (float64, bool) {
	if s == nil || len(s.Candles) == 0 {
		return 0, false
	}
	return s.Candles[len(s.Candles)-1].Close, true
}

// Headline is one news item returned by the news collaborator.
type Headline struct {
	Title       string    `json:"title"`
	Link        string    `json:"link,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// TurnResult is the full payload for one user turn: the routing decision
// plus whatever the downstream collaborators produced. Missing chart or
// news data is reported through Warnings, never as a failed turn.
type TurnResult struct {
	TurnID    string       `json:"turn_id"`
	Decision  Decision     `json:"decision"`
	Chart     *ChartSeries `json:"chart,omitempty"`
	Headlines []Headline   `json:"headlines,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Warnings  []string     `json:"warnings,omitempty"`
}
