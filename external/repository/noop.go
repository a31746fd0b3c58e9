package repository

import (
	"context"

	"github.com/foxseedlab/ronpakun/internal/repository"
)

// NoopRepository discards archives. Used when DATABASE_URL is not configured.
type NoopRepository struct{}

func NewNoopRepository() repository.Repository {
	return &NoopRepository{}
}

func (r *NoopRepository) ArchiveDebate(_ context.Context, input repository.ArchiveDebateInput) (*repository.ArchivedDebate, error) {
	return &repository.ArchivedDebate{
		ThreadID:   input.ThreadID,
		OpponentID: input.OpponentID,
		Subject:    input.Subject,
		Outcome:    input.Outcome,
		StartedAt:  input.StartedAt,
		EndedAt:    input.EndedAt,
	}, nil
}
