package models

import "time"

// Action discriminates the router's per-turn outcome.
type Action string

const (
	ActionAnalyze Action = "analyze"
	ActionChat    Action = "chat"
	ActionError   Action = "error"
)

// Valid reports whether the action is one of the known variants.
func (a Action) Valid() bool {
	switch a {
	case ActionAnalyze, ActionChat, ActionError:
		return true
	}
	return false
}

// DecisionSource records which stage of the pipeline produced an analyze
// decision: the curated symbol table or the language model fallback.
type DecisionSource string

const (
	SourceDatabase DecisionSource = "database"
	SourceAI       DecisionSource = "ai"
)

// RawExtraction is the unvalidated structured output of the intent
// extractor. The ticker may be malformed (missing exchange suffix, wrong
// case, stray whitespace) until the normalizer has seen it; nothing
// downstream may trust this shape without validation.
type RawExtraction struct {
	Action     Action `json:"action"`
	Ticker     string `json:"ticker,omitempty"`
	SearchTerm string `json:"search_term,omitempty"`
	Reply      string `json:"reply,omitempty"`
}

// Decision is the router's single output per user turn. Exactly one variant
// is populated: analyze carries Ticker/DisplayName/Source, chat carries
// Reply, error carries Message.
type Decision struct {
	Action      Action         `json:"action"`
	Ticker      string         `json:"ticker,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	Source      DecisionSource `json:"source,omitempty"`
	Reply       string         `json:"reply,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// AnalyzeDecision builds an analyze decision.
func AnalyzeDecision(ticker, displayName string, source DecisionSource) Decision {
	return Decision{
		Action:      ActionAnalyze,
		Ticker:      ticker,
		DisplayName: displayName,
		Source:      source,
	}
}

// ChatDecision builds a chat decision.
func ChatDecision(reply string) Decision {
	return Decision{Action: ActionChat, Reply: reply}
}

// ErrorDecision builds an error decision.
func ErrorDecision(message string) Decision {
	return Decision{Action: ActionError, Message: message}
}

// Turn is one append-only chat transcript record. The transcript belongs to
// the UI layer; the router itself stays stateless across turns.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
