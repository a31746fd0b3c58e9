package bot

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/webhook"
)

func archivedSession() *debate.Session {
	return &debate.Session{
		ThreadID:     "thread-1",
		OpponentID:   "user-1",
		Subject:      "pineapple pizza",
		Status:       debate.StatusEnded,
		FallacyCount: 3,
		CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Transcript: []llm.Message{
			{Role: llm.RoleAssistant, Content: "Pineapple ruins pizza, full stop."},
			{Role: llm.RoleUser, Content: "Sweetness balances the salt, that is basic cooking."},
		},
	}
}

func TestBuildTranscriptText(t *testing.T) {
	endedAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	text := string(buildTranscriptText(archivedSession(), endedAt))

	for _, want := range []string{
		"Subject: pineapple pizza",
		"Opponent: user-1",
		"Period: 2026-08-01 10:00:00 ~ 2026-08-01 10:30:00 (UTC)",
		"fallacies: 3",
		"BOT: Pineapple ruins pizza, full stop.",
		"OPPONENT: Sweetness balances the salt, that is basic cooking.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("transcript is missing %q\n%s", want, text)
		}
	}
}

func TestBuildResultPayload(t *testing.T) {
	endedAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	payload := buildResultPayload(archivedSession(), "won", endedAt)

	if payload.SchemaVersion != webhook.DebateResultSchemaVersion {
		t.Errorf("schema version = %q", payload.SchemaVersion)
	}
	if payload.ThreadID != "thread-1" || payload.OpponentID != "user-1" {
		t.Errorf("ids = %q/%q", payload.ThreadID, payload.OpponentID)
	}
	if payload.Outcome != "won" {
		t.Errorf("outcome = %q, want won", payload.Outcome)
	}
	if payload.FallacyCount != 3 {
		t.Errorf("fallacy count = %d, want 3", payload.FallacyCount)
	}
	if payload.StartedAt != "2026-08-01T10:00:00Z" || payload.EndedAt != "2026-08-01T10:30:00Z" {
		t.Errorf("period = %q ~ %q", payload.StartedAt, payload.EndedAt)
	}
	if !strings.Contains(payload.Transcript, "BOT: Pineapple ruins pizza, full stop.") {
		t.Errorf("payload transcript is missing the bot turn:\n%s", payload.Transcript)
	}
}

func TestThreadNameTruncation(t *testing.T) {
	short := threadName("cats")
	if short != "Debate: cats" {
		t.Errorf("threadName = %q", short)
	}

	long := threadName(strings.Repeat("a", 200))
	if len(long) != threadNameMaxLen {
		t.Errorf("long thread name has %d chars, want %d", len(long), threadNameMaxLen)
	}

	wide := threadName(strings.Repeat("あ", 200))
	if utf8.RuneCountInString(wide) != threadNameMaxLen {
		t.Errorf("wide thread name has %d runes, want %d", utf8.RuneCountInString(wide), threadNameMaxLen)
	}
	if !utf8.ValidString(wide) {
		t.Error("wide thread name is not valid UTF-8")
	}
}
