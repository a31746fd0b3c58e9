package webhook

import "context"

const DebateResultSchemaVersion = "2026-08-01"

type DebateResultPayload struct {
	SchemaVersion    string `json:"schema_version"`
	ThreadID         string `json:"thread_id"`
	OpponentID       string `json:"opponent_id"`
	Subject          string `json:"subject"`
	Outcome          string `json:"outcome"`
	FallacyCount     int    `json:"fallacy_count"`
	InactivityStreak int    `json:"inactivity_streak"`
	StartedAt        string `json:"started_at"`
	EndedAt          string `json:"ended_at"`
	Transcript       string `json:"transcript"`
}

type Sender interface {
	SendResult(ctx context.Context, payload DebateResultPayload) error
}
