package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// MockExtractor provides scripted extractions for tests without network
// calls. Responses are keyed by the exact user text; unknown text falls
// back to a chat reply (or, when Fail is set, to an error extraction).
type MockExtractor struct {
	Responses map[string]models.RawExtraction
	// Fail simulates a transport failure for every call.
	Fail bool
	// Calls records every user text seen, in order.
	Calls []string
}

// NewMockExtractor creates an empty scripted extractor.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{Responses: make(map[string]models.RawExtraction)}
}

// Extract implements Extractor.
func (m *MockExtractor) Extract(ctx context.Context, userText string) models.RawExtraction {
	m.Calls = append(m.Calls, userText)

	if m.Fail {
		return models.RawExtraction{
			Action: models.ActionError,
			Reply:  "تعذر تحليل الطلب: simulated network failure",
		}
	}

	if raw, ok := m.Responses[userText]; ok {
		return raw
	}

	return models.RawExtraction{
		Action: models.ActionChat,
		Reply:  fmt.Sprintf("mock reply to %q", strings.TrimSpace(userText)),
	}
}

// MockSummarizer provides a canned summary for tests.
type MockSummarizer struct {
	Summary string
	Err     error
	Calls   int
}

// Summarize implements Summarizer.
func (m *MockSummarizer) Summarize(ctx context.Context, displayName string, headlines []models.Headline) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Summary != "" {
		return m.Summary, nil
	}
	return fmt.Sprintf("summary of %d headlines for %s", len(headlines), displayName), nil
}
