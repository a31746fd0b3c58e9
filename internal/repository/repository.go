package repository

import (
	"context"
	"time"
)

type ArchiveTurnInput struct {
	TurnIndex int
	Role      string
	Content   string
}

type ArchiveDebateInput struct {
	ThreadID         string
	OpponentID       string
	Subject          string
	Outcome          DebateOutcome
	FallacyCount     int
	InactivityStreak int
	StartedAt        time.Time
	EndedAt          time.Time
	Turns            []ArchiveTurnInput
}

// Repository records finished debates. It is written to after termination
// only and is never read back into live session state.
type Repository interface {
	ArchiveDebate(ctx context.Context, input ArchiveDebateInput) (*ArchivedDebate, error)
}
