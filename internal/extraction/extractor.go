package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// Extractor classifies a user turn as a symbol-analysis request or plain
// chat, returning the model's best-guess ticker and display name when it is
// an analysis request. Its output is untrusted until validated here.
type Extractor interface {
	Extract(ctx context.Context, userText string) models.RawExtraction
}

// IntentExtractor backs Extractor with a Groq chat completion in JSON mode.
type IntentExtractor struct {
	client  *Client
	prompts *PromptTemplates
}

// NewIntentExtractor builds an extractor around the shared client.
func NewIntentExtractor(client *Client, prompts *PromptTemplates) *IntentExtractor {
	return &IntentExtractor{client: client, prompts: prompts}
}

// Extract never returns an error: every failure mode (network, timeout,
// non-JSON payload, payload with a missing or unknown action) is folded
// into an error-shaped RawExtraction so the router can surface it as a
// Decision. Sampling is deterministic (temperature 0).
func (e *IntentExtractor) Extract(ctx context.Context, userText string) models.RawExtraction {
	content, err := e.client.complete(ctx, e.prompts.ExtractionSystemPrompt, userText, 0, true)
	if err != nil {
		return extractionFailure(fmt.Sprintf("تعذر تحليل الطلب: %v", err))
	}

	return ParseRawExtraction(content)
}

// ParseRawExtraction validates the model's JSON payload against the
// RawExtraction shape. Anything that does not validate becomes an
// error-shaped extraction; a partially populated analyze record is never
// returned.
func ParseRawExtraction(payload string) models.RawExtraction {
	var raw models.RawExtraction
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return extractionFailure(fmt.Sprintf("رد غير صالح من النموذج: %v", err))
	}

	switch raw.Action {
	case models.ActionAnalyze:
		if strings.TrimSpace(raw.Ticker) == "" {
			return extractionFailure("رد التحليل لا يحتوي على رمز سهم")
		}
		return raw
	case models.ActionChat:
		if raw.Reply == "" {
			return extractionFailure("رد الدردشة فارغ")
		}
		return raw
	case models.ActionError:
		if raw.Reply == "" {
			raw.Reply = "حدث خطأ غير معروف"
		}
		return raw
	default:
		return extractionFailure(fmt.Sprintf("إجراء غير معروف: %q", string(raw.Action)))
	}
}

func extractionFailure(message string) models.RawExtraction {
	return models.RawExtraction{
		Action: models.ActionError,
		Reply:  message,
	}
}
