package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/mohamedagadya/Stocks/internal/models"
	"github.com/mohamedagadya/Stocks/internal/symbols"
)

// TurnRunner resolves one user turn into a full result. The analysis
// package provides the production implementation.
type TurnRunner interface {
	Run(ctx context.Context, userText string) models.TurnResult
}

// ResolutionObserver records decision outcomes for metrics. Nil-safe at
// the call sites so tests can omit it.
type ResolutionObserver interface {
	ObserveResolution(decision models.Decision)
}

type Handler struct {
	runner     TurnRunner
	table      *symbols.Table
	transcript *Transcript
	observer   ResolutionObserver
	logger     *slog.Logger
	startTime  time.Time
}

func NewHandler(runner TurnRunner, table *symbols.Table, transcript *Transcript, observer ResolutionObserver, logger *slog.Logger) *Handler {
	return &Handler{
		runner:     runner,
		table:      table,
		transcript: transcript,
		observer:   observer,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// HandleChat handles POST /api/chat (run a turn) and GET /api/chat
// (return the transcript).
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		preflight(w, "GET, POST, OPTIONS")
	case http.MethodPost:
		h.chatHandler(w, r)
	case http.MethodGet:
		h.transcriptHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// preflight answers a CORS preflight request. ServeMux routes OPTIONS to
// the most specific pattern, so each endpoint answers its own.
func preflight(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

// chatHandler runs the resolution pipeline for one user message.
func (h *Handler) chatHandler(w http.ResponseWriter, r *http.Request) {
	var request ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(request.Message)
	if message == "" {
		http.Error(w, "Missing required field: message", http.StatusBadRequest)
		return
	}

	h.transcript.Append(models.RoleUser, message)

	result := h.runner.Run(r.Context(), message)

	if h.observer != nil {
		h.observer.ObserveResolution(result.Decision)
	}

	h.transcript.Append(models.RoleAssistant, assistantContent(result))

	h.logger.Info("chat turn completed",
		"turn_id", result.TurnID,
		"action", result.Decision.Action,
		"source", result.Decision.Source,
		"warnings", len(result.Warnings))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// transcriptHandler returns the full conversation history.
func (h *Handler) transcriptHandler(w http.ResponseWriter, r *http.Request) {
	turns := h.transcript.All()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TranscriptResponse{
		Turns: turns,
		Count: len(turns),
	})
}

// SymbolsHandler handles GET /api/symbols.
func (h *Handler) SymbolsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		preflight(w, "GET, OPTIONS")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := h.table.All()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SymbolsResponse{
		Symbols: entries,
		Count:   len(entries),
	})
}

// InfoHandler handles GET /api/info.
func (h *Handler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		preflight(w, "GET, OPTIONS")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(h.startTime)
	uptimeSeconds := int64(uptime.Seconds())
	hours := int64(uptime.Hours())
	minutes := int64(uptime.Minutes()) % 60
	seconds := uptimeSeconds % 60

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(InfoResponse{
		Service:         "stocks",
		SymbolCount:     h.table.Len(),
		TurnCount:       h.transcript.Len(),
		UptimeSeconds:   uptimeSeconds,
		UptimeFormatted: fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds),
	})
}

// HealthHandler handles GET /healthz.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// assistantContent derives the transcript text for one turn result. The
// summary stands in for analyze turns when present; warnings are surfaced
// when it is not.
func assistantContent(result models.TurnResult) string {
	switch result.Decision.Action {
	case models.ActionChat:
		return result.Decision.Reply
	case models.ActionError:
		return result.Decision.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", result.Decision.DisplayName, result.Decision.Ticker)
	if result.Summary != "" {
		b.WriteString("\n")
		b.WriteString(result.Summary)
	}
	for _, warning := range result.Warnings {
		b.WriteString("\n")
		b.WriteString(warning)
	}
	return b.String()
}

// Request and response types
type ChatRequest struct {
	Message string `json:"message"`
}

type TranscriptResponse struct {
	Turns []models.Turn `json:"turns"`
	Count int           `json:"count"`
}

type SymbolsResponse struct {
	Symbols []models.AliasEntry `json:"symbols"`
	Count   int                 `json:"count"`
}

type InfoResponse struct {
	Service         string `json:"service"`
	SymbolCount     int    `json:"symbol_count"`
	TurnCount       int    `json:"turn_count"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	UptimeFormatted string `json:"uptime_formatted"`
}
