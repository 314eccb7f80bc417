package extraction

import (
	"context"
	"fmt"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// Summarizer turns a batch of headlines into a free-text sentiment summary
// for one instrument.
type Summarizer interface {
	Summarize(ctx context.Context, displayName string, headlines []models.Headline) (string, error)
}

// NewsSummarizer backs Summarizer with the shared Groq client. Unlike the
// extractor it uses the model's default sampling and returns errors to the
// caller; the analysis layer decides how to present them.
type NewsSummarizer struct {
	client  *Client
	prompts *PromptTemplates
}

// NewNewsSummarizer builds a summarizer around the shared client.
func NewNewsSummarizer(client *Client, prompts *PromptTemplates) *NewsSummarizer {
	return &NewsSummarizer{client: client, prompts: prompts}
}

// Summarize asks for a 10-point positive/negative rundown of the headlines.
func (s *NewsSummarizer) Summarize(ctx context.Context, displayName string, headlines []models.Headline) (string, error) {
	if len(headlines) == 0 {
		return "", fmt.Errorf("no headlines to summarize for %s", displayName)
	}

	prompt := s.prompts.BuildSummaryPrompt(displayName, headlines)
	summary, err := s.client.complete(ctx, s.prompts.SummarySystemPrompt, prompt, 1, false)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", displayName, err)
	}

	return summary, nil
}
