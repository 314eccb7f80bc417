// Package extraction talks to the Groq chat-completion API (OpenAI
// compatible) for the two language-model capabilities of the service:
// intent extraction and news sentiment summarization.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mohamedagadya/Stocks/internal/config"
)

// Client wraps a single long-lived chat-completion client. One instance is
// constructed at process start and shared by the extractor and the
// summarizer; per-call state lives entirely in arguments.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient builds a Groq-backed client from config. Groq implements the
// OpenAI chat completion surface, so the stock client is pointed at the
// Groq base URL.
func NewClient(cfg config.GroqConfig, logger *slog.Logger) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

const (
	maxRetries = 3
	baseDelay  = 1 * time.Second
)

// newChatRequest assembles one chat completion request. Temperature 0 is
// mapped to math.SmallestNonzeroFloat32: the field is tagged omitempty, so
// a literal 0 would vanish from the wire and the API would sample at its
// own default instead of deterministically.
func newChatRequest(model, systemPrompt, userPrompt string, temperature float32, jsonMode bool) openai.ChatCompletionRequest {
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	request := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return request
}

// complete issues one chat completion with the configured timeout,
// retrying rate-limit responses with jittered exponential backoff.
// jsonMode requests a single JSON object as the response body.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, jsonMode bool) (string, error) {
	request := newChatRequest(c.model, systemPrompt, userPrompt, temperature, jsonMode)

	var resp openai.ChatCompletionResponse
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		start := time.Now()
		resp, err = c.api.CreateChatCompletion(callCtx, request)
		cancel()

		c.logger.Debug("chat completion call",
			"model", c.model,
			"attempt", attempt+1,
			"duration_ms", time.Since(start).Milliseconds(),
			"success", err == nil)

		if err == nil {
			break
		}

		if !isRateLimited(err) || attempt == maxRetries-1 {
			break
		}

		delay := baseDelay*time.Duration(1<<uint(attempt)) + time.Duration(rand.Intn(500))*time.Millisecond
		c.logger.Warn("rate limited, retrying with backoff",
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds())
		time.Sleep(delay)
	}

	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned from model %s", c.model)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response from model %s (finish_reason: %s)", c.model, resp.Choices[0].FinishReason)
	}

	return content, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "Too Many Requests") ||
		strings.Contains(msg, "Rate limit")
}
