package repository

import (
	"context"
	"fmt"

	"github.com/foxseedlab/ronpakun/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ArchiveDebate(ctx context.Context, input repository.ArchiveDebateInput) (*repository.ArchivedDebate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	debateID := uuid.NewString()
	row := tx.QueryRow(ctx,
		`INSERT INTO debates (id, thread_id, opponent_id, subject, outcome, fallacy_count, inactivity_streak, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, thread_id, opponent_id, subject, outcome, fallacy_count, inactivity_streak, started_at, ended_at, created_at`,
		debateID, input.ThreadID, input.OpponentID, input.Subject, input.Outcome,
		input.FallacyCount, input.InactivityStreak, input.StartedAt, input.EndedAt)

	var d repository.ArchivedDebate
	if err := row.Scan(&d.ID, &d.ThreadID, &d.OpponentID, &d.Subject, &d.Outcome,
		&d.FallacyCount, &d.InactivityStreak, &d.StartedAt, &d.EndedAt, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert debate: %w", err)
	}

	for _, turn := range input.Turns {
		if _, err := tx.Exec(ctx,
			`INSERT INTO debate_turns (id, debate_id, turn_index, role, content)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), debateID, turn.TurnIndex, turn.Role, turn.Content); err != nil {
			return nil, fmt.Errorf("failed to insert debate turn %d: %w", turn.TurnIndex, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}
