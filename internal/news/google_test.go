package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohamedagadya/Stocks/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string, maxHeadlines int) *GoogleClient {
	return NewGoogleClient(config.NewsConfig{
		BaseURL:      serverURL,
		Language:     "ar",
		Country:      "EG",
		MaxHeadlines: maxHeadlines,
		Timeout:      5 * time.Second,
	}, testLogger())
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"فوري" - Google News</title>
    <item>
      <title>فوري تعلن نمو الإيرادات 30%</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Fawry expands into Saudi market</title>
      <link>https://example.com/b</link>
      <pubDate>Sun, 24 Aug 2025 08:30:00 +0200</pubDate>
    </item>
    <item>
      <title>  </title>
      <link>https://example.com/empty</link>
      <pubDate>bad date</pubDate>
    </item>
  </channel>
</rss>`

func TestSearchParsesHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "فوري" {
			t.Errorf("expected q=فوري, got %q", q.Get("q"))
		}
		if q.Get("hl") != "ar" || q.Get("gl") != "EG" || q.Get("ceid") != "EG:ar" {
			t.Errorf("unexpected locale params: hl=%q gl=%q ceid=%q", q.Get("hl"), q.Get("gl"), q.Get("ceid"))
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	headlines, err := newTestClient(srv.URL, 200).Search(context.Background(), "فوري")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	// The blank-title item is dropped.
	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(headlines))
	}

	if headlines[0].Title != "فوري تعلن نمو الإيرادات 30%" {
		t.Errorf("unexpected first headline: %q", headlines[0].Title)
	}
	if headlines[0].PublishedAt.IsZero() {
		t.Error("expected first pubDate to parse")
	}
	if headlines[1].Link != "https://example.com/b" {
		t.Errorf("unexpected second link: %q", headlines[1].Link)
	}
}

func TestSearchBoundsHeadlineCount(t *testing.T) {
	var feed string
	feed = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`
	for i := 0; i < 10; i++ {
		feed += fmt.Sprintf(`<item><title>headline %d</title><link>https://example.com/%d</link></item>`, i, i)
	}
	feed += `</channel></rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	headlines, err := newTestClient(srv.URL, 3).Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(headlines) != 3 {
		t.Errorf("expected headlines bounded to 3, got %d", len(headlines))
	}
}

func TestSearchEmptyFeedReturnsNoHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`))
	}))
	defer srv.Close()

	headlines, err := newTestClient(srv.URL, 200).Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("empty feed should not be an error, got: %v", err)
	}
	if len(headlines) != 0 {
		t.Errorf("expected no headlines, got %d", len(headlines))
	}
}

func TestSearchServerFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, 200).Search(context.Background(), "فوري"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestSearchMalformedFeedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"this":"is not xml"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, 200).Search(context.Background(), "فوري"); err == nil {
		t.Fatal("expected error for non-XML body")
	}
}

func TestParsePubDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		zero  bool
	}{
		{name: "rfc1123", value: "Mon, 25 Aug 2025 10:00:00 GMT"},
		{name: "rfc1123z", value: "Mon, 25 Aug 2025 10:00:00 +0200"},
		{name: "rfc3339", value: "2025-08-25T10:00:00Z"},
		{name: "garbage", value: "yesterday-ish", zero: true},
		{name: "empty", value: "", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePubDate(tt.value)
			if got.IsZero() != tt.zero {
				t.Errorf("parsePubDate(%q).IsZero() = %t, want %t", tt.value, got.IsZero(), tt.zero)
			}
		})
	}
}
