package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mohamedagadya/Stocks/internal/config"
	"github.com/mohamedagadya/Stocks/internal/extraction"
	"github.com/mohamedagadya/Stocks/internal/models"
	"github.com/mohamedagadya/Stocks/internal/router"
	"github.com/mohamedagadya/Stocks/internal/symbols"
)

type stubCharts struct {
	series *models.ChartSeries
	err    error
	calls  int
}

func (s *stubCharts) History(ctx context.Context, ticker string) (*models.ChartSeries, error) {
	s.calls++
	return s.series, s.err
}

type stubNews struct {
	headlines []models.Headline
	err       error
	calls     int
}

func (s *stubNews) Search(ctx context.Context, displayName string) ([]models.Headline, error) {
	s.calls++
	return s.headlines, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSeries(ticker string) *models.ChartSeries {
	return &models.ChartSeries{
		Ticker: ticker,
		Candles: []models.Candle{
			{Time: time.Now().AddDate(0, 0, -1), Close: 11.5},
			{Time: time.Now(), Close: 12.0},
		},
	}
}

func sampleHeadlines() []models.Headline {
	return []models.Headline{
		{Title: "فوري تعلن أرباح قياسية"},
		{Title: "Fawry signs new bank partnership"},
	}
}

func newAnalyzer(mock *extraction.MockExtractor, charts *stubCharts, newsStub *stubNews, summarizer *extraction.MockSummarizer) *Analyzer {
	logger := testLogger()
	r := router.New(symbols.DefaultTable(), mock, config.RouterConfig{MatchThreshold: symbols.DefaultThreshold, AutoSuffixRepair: true}, logger)
	return New(r, charts, newsStub, summarizer, logger)
}

func TestRunAnalyzeTurnCollectsEverything(t *testing.T) {
	charts := &stubCharts{series: sampleSeries("FWRY.CA")}
	newsStub := &stubNews{headlines: sampleHeadlines()}
	summarizer := &extraction.MockSummarizer{Summary: "١٠ نقاط عن السهم"}

	a := newAnalyzer(extraction.NewMockExtractor(), charts, newsStub, summarizer)
	result := a.Run(context.Background(), "فوري")

	if result.TurnID == "" {
		t.Error("expected a turn id")
	}
	if result.Decision.Action != models.ActionAnalyze {
		t.Fatalf("expected analyze decision, got %q", result.Decision.Action)
	}
	if result.Decision.Source != models.SourceDatabase {
		t.Errorf("expected database source, got %q", result.Decision.Source)
	}
	if result.Chart == nil || len(result.Chart.Candles) != 2 {
		t.Error("expected chart series attached")
	}
	if len(result.Headlines) != 2 {
		t.Errorf("expected headlines attached, got %d", len(result.Headlines))
	}
	if result.Summary != "١٠ نقاط عن السهم" {
		t.Errorf("expected summary attached, got %q", result.Summary)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestRunChartAbsenceIsWarningNotFailure(t *testing.T) {
	charts := &stubCharts{series: nil}
	newsStub := &stubNews{headlines: sampleHeadlines()}
	summarizer := &extraction.MockSummarizer{}

	a := newAnalyzer(extraction.NewMockExtractor(), charts, newsStub, summarizer)
	result := a.Run(context.Background(), "فوري")

	if result.Decision.Action != models.ActionAnalyze {
		t.Fatalf("expected analyze decision, got %q", result.Decision.Action)
	}
	if result.Chart != nil {
		t.Error("expected no chart")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a chart-absence warning")
	}
	// News and summary still run.
	if len(result.Headlines) == 0 || result.Summary == "" {
		t.Error("news pipeline should continue despite missing chart")
	}
}

func TestRunNewsAbsenceSkipsSummarizer(t *testing.T) {
	charts := &stubCharts{series: sampleSeries("FWRY.CA")}
	newsStub := &stubNews{headlines: nil}
	summarizer := &extraction.MockSummarizer{}

	a := newAnalyzer(extraction.NewMockExtractor(), charts, newsStub, summarizer)
	result := a.Run(context.Background(), "فوري")

	if summarizer.Calls != 0 {
		t.Errorf("summarizer must not run without headlines, got %d calls", summarizer.Calls)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a news-absence warning")
	}
	if result.Chart == nil {
		t.Error("chart should still be attached")
	}
}

func TestRunNewsErrorIsWarning(t *testing.T) {
	charts := &stubCharts{series: sampleSeries("FWRY.CA")}
	newsStub := &stubNews{err: errors.New("feed unreachable")}
	summarizer := &extraction.MockSummarizer{}

	a := newAnalyzer(extraction.NewMockExtractor(), charts, newsStub, summarizer)
	result := a.Run(context.Background(), "فوري")

	if result.Decision.Action != models.ActionAnalyze {
		t.Fatalf("news failure must not fail the turn, got %q", result.Decision.Action)
	}
	if summarizer.Calls != 0 {
		t.Error("summarizer must not run when news fetch fails")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for failed news fetch")
	}
}

func TestRunSummarizerErrorIsWarning(t *testing.T) {
	charts := &stubCharts{series: sampleSeries("FWRY.CA")}
	newsStub := &stubNews{headlines: sampleHeadlines()}
	summarizer := &extraction.MockSummarizer{Err: errors.New("model unavailable")}

	a := newAnalyzer(extraction.NewMockExtractor(), charts, newsStub, summarizer)
	result := a.Run(context.Background(), "فوري")

	if result.Summary != "" {
		t.Errorf("expected no summary, got %q", result.Summary)
	}
	if len(result.Headlines) == 0 {
		t.Error("headlines should still be attached")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a summarization warning")
	}
}

func TestRunChatTurnNeverTouchesCollaborators(t *testing.T) {
	mock := extraction.NewMockExtractor()
	mock.Responses["إزيك"] = models.RawExtraction{Action: models.ActionChat, Reply: "أهلاً بيك"}

	charts := &stubCharts{}
	newsStub := &stubNews{}
	summarizer := &extraction.MockSummarizer{}

	a := newAnalyzer(mock, charts, newsStub, summarizer)
	result := a.Run(context.Background(), "إزيك")

	if result.Decision.Action != models.ActionChat {
		t.Fatalf("expected chat decision, got %q", result.Decision.Action)
	}
	if result.Decision.Reply != "أهلاً بيك" {
		t.Errorf("expected verbatim reply, got %q", result.Decision.Reply)
	}
	if charts.calls != 0 || newsStub.calls != 0 || summarizer.Calls != 0 {
		t.Error("chat turns must not invoke chart, news or summarizer")
	}
}

func TestRunExtractionFailureNeverTouchesCollaborators(t *testing.T) {
	mock := extraction.NewMockExtractor()
	mock.Fail = true

	charts := &stubCharts{}
	newsStub := &stubNews{}
	summarizer := &extraction.MockSummarizer{}

	a := newAnalyzer(mock, charts, newsStub, summarizer)
	result := a.Run(context.Background(), "zzzq 9876 doge")

	if result.Decision.Action != models.ActionError {
		t.Fatalf("expected error decision, got %q", result.Decision.Action)
	}
	if result.Decision.Message == "" {
		t.Error("error decision must carry a message")
	}
	if charts.calls != 0 || newsStub.calls != 0 || summarizer.Calls != 0 {
		t.Error("failed turns must not invoke chart, news or summarizer")
	}
}
