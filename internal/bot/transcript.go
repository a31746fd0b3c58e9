package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/webhook"
)

const transcriptTimeLayout = "2006-01-02 15:04:05"

func buildTranscriptText(s *debate.Session, endedAt time.Time) []byte {
	lines := []string{
		fmt.Sprintf("Subject: %s", s.Subject),
		fmt.Sprintf("Opponent: %s", s.OpponentID),
		fmt.Sprintf("Period: %s ~ %s (UTC)",
			s.CreatedAt.UTC().Format(transcriptTimeLayout),
			endedAt.UTC().Format(transcriptTimeLayout)),
		fmt.Sprintf("Outcome: %s | fallacies: %d", s.Status, s.FallacyCount),
		"",
	}
	for _, turn := range s.Transcript {
		lines = append(lines, fmt.Sprintf("%s %s", speakerLabel(turn.Role), turn.Content))
	}
	return []byte(strings.Join(lines, "\n"))
}

func buildResultPayload(s *debate.Session, outcome string, endedAt time.Time) webhook.DebateResultPayload {
	transcriptLines := make([]string, 0, len(s.Transcript))
	for _, turn := range s.Transcript {
		transcriptLines = append(transcriptLines, fmt.Sprintf("%s %s", speakerLabel(turn.Role), turn.Content))
	}
	return webhook.DebateResultPayload{
		SchemaVersion:    webhook.DebateResultSchemaVersion,
		ThreadID:         s.ThreadID,
		OpponentID:       s.OpponentID,
		Subject:          s.Subject,
		Outcome:          outcome,
		FallacyCount:     s.FallacyCount,
		InactivityStreak: s.InactivityStreak,
		StartedAt:        s.CreatedAt.UTC().Format(time.RFC3339),
		EndedAt:          endedAt.UTC().Format(time.RFC3339),
		Transcript:       strings.Join(transcriptLines, "\n"),
	}
}

func speakerLabel(role string) string {
	switch role {
	case llm.RoleAssistant:
		return "BOT:"
	case llm.RoleUser:
		return "OPPONENT:"
	default:
		return strings.ToUpper(role) + ":"
	}
}
