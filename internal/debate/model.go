package debate

import (
	"time"

	"github.com/foxseedlab/ronpakun/internal/llm"
)

type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusEnded  Status = "ended"
)

// Session is one ongoing debate, keyed by the hosting thread.
// It is mutated only by the Manager during turn processing.
type Session struct {
	ThreadID         string        `json:"thread_id"`
	OpponentID       string        `json:"opponent_id"`
	Subject          string        `json:"subject"`
	Transcript       []llm.Message `json:"transcript"`
	Status           Status        `json:"status"`
	FallacyCount     int           `json:"fallacy_count"`
	InactivityStreak int           `json:"inactivity_streak"`
	CreatedAt        time.Time     `json:"created_at"`
	LastActivityAt   time.Time     `json:"last_activity_at"`
}
