package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE debate_outcome AS ENUM ('won', 'ended'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS debates (
		id UUID PRIMARY KEY,
		thread_id TEXT NOT NULL,
		opponent_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		outcome debate_outcome NOT NULL,
		fallacy_count INTEGER NOT NULL DEFAULT 0,
		inactivity_streak INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debates_thread ON debates (thread_id)`,
	`CREATE INDEX IF NOT EXISTS idx_debates_opponent ON debates (opponent_id)`,
	`CREATE TABLE IF NOT EXISTS debate_turns (
		id UUID PRIMARY KEY,
		debate_id UUID NOT NULL REFERENCES debates(id) ON DELETE CASCADE,
		turn_index INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		UNIQUE(debate_id, turn_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debate_turns_debate ON debate_turns (debate_id, turn_index)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
