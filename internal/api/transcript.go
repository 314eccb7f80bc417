package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// Transcript is the append-only conversation history. Turns are never
// mutated or removed once recorded; the pipeline itself stays stateless
// and only this store remembers past turns.
type Transcript struct {
	mu    sync.RWMutex
	turns []models.Turn
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append records one turn and returns it with ID and timestamp filled in.
func (t *Transcript) Append(role, content string) models.Turn {
	turn := models.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	t.turns = append(t.turns, turn)
	t.mu.Unlock()

	return turn
}

// All returns a copy of the recorded turns in insertion order.
func (t *Transcript) All() []models.Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len reports the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}
