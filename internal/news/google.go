// Package news fetches instrument headlines from the Google News RSS
// search endpoint.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohamedagadya/Stocks/internal/config"
	"github.com/mohamedagadya/Stocks/internal/models"
)

// Provider returns recent headlines for a display name. An empty slice with
// a nil error means nothing was found; callers treat that as a non-fatal
// warning.
type Provider interface {
	Search(ctx context.Context, displayName string) ([]models.Headline, error)
}

// GoogleClient implements Provider over the Google News RSS search feed.
type GoogleClient struct {
	baseURL      string
	language     string
	country      string
	maxHeadlines int
	client       *http.Client
	logger       *slog.Logger
}

// NewGoogleClient builds a news client from config.
func NewGoogleClient(cfg config.NewsConfig, logger *slog.Logger) *GoogleClient {
	return &GoogleClient{
		baseURL:      cfg.BaseURL,
		language:     cfg.Language,
		country:      cfg.Country,
		maxHeadlines: cfg.MaxHeadlines,
		client:       &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

// rssFeed mirrors the RSS 2.0 structure Google News serves.
type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

// Search fetches headlines mentioning the display name, newest-first as the
// feed delivers them, bounded by the configured maximum.
func (c *GoogleClient) Search(ctx context.Context, displayName string) ([]models.Headline, error) {
	query := url.Values{}
	query.Set("q", displayName)
	query.Set("hl", c.language)
	query.Set("gl", c.country)
	query.Set("ceid", fmt.Sprintf("%s:%s", c.country, c.language))

	endpoint := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	headlines := make([]models.Headline, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, models.Headline{
			Title:       title,
			Link:        strings.TrimSpace(item.Link),
			PublishedAt: parsePubDate(item.PubDate),
		})
		if len(headlines) >= c.maxHeadlines {
			break
		}
	}

	c.logger.Debug("fetched headlines", "query", displayName, "count", len(headlines))
	return headlines, nil
}

// parsePubDate attempts the date formats RSS feeds use in the wild.
func parsePubDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t
		}
	}

	return time.Time{}
}
