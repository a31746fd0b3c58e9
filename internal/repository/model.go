package repository

import "time"

type DebateOutcome string

const (
	DebateOutcomeWon   DebateOutcome = "won"
	DebateOutcomeEnded DebateOutcome = "ended"
)

type ArchivedDebate struct {
	ID               string
	ThreadID         string
	OpponentID       string
	Subject          string
	Outcome          DebateOutcome
	FallacyCount     int
	InactivityStreak int
	StartedAt        time.Time
	EndedAt          time.Time
	CreatedAt        time.Time
}

type ArchivedTurn struct {
	ID        string
	DebateID  string
	TurnIndex int
	Role      string
	Content   string
}
