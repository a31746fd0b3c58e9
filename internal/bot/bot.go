package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/foxseedlab/ronpakun/internal/discord"
	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/repository"
	"github.com/foxseedlab/ronpakun/internal/webhook"
)

const typingRefreshInterval = 5 * time.Second

// DebateManager is the slice of the session manager the transport layer drives.
type DebateManager interface {
	CreateSession(ctx context.Context, threadID, opponentID, subject string) (*debate.Session, error)
	GetSession(ctx context.Context, threadID string) (*debate.Session, error)
	ProcessTurn(ctx context.Context, threadID, opponentMessage string, isOpening bool, externalHistory []llm.Message) (string, error)
	EndSession(ctx context.Context, threadID string) (*debate.Session, error)
}

// Bot maps platform threads to debate sessions and handles all inbound and
// outbound Discord traffic.
type Bot struct {
	cfg       *config.Config
	discord   discord.Client
	manager   DebateManager
	repo      repository.Repository
	webhook   webhook.Sender
	clock     func() time.Time
	botUserID string
}

func New(cfg *config.Config, dc discord.Client, manager DebateManager, repo repository.Repository, wh webhook.Sender) *Bot {
	return &Bot{
		cfg:     cfg,
		discord: dc,
		manager: manager,
		repo:    repo,
		webhook: wh,
		clock:   time.Now,
	}
}

func (b *Bot) SetBotUserID(userID string) {
	b.botUserID = userID
}

func (b *Bot) HandleMessageCreate(event discord.MessageEvent) {
	if event.AuthorIsBot || event.AuthorID == b.botUserID {
		return
	}
	if event.GuildID != b.cfg.DiscordGuildID {
		return
	}
	if event.IsThread {
		b.handleThreadMessage(event)
		return
	}
	b.maybeStartDebate(event)
}

func (b *Bot) maybeStartDebate(event discord.MessageEvent) {
	subject, ok := parseTrigger(event.Content, b.botUserID, event.MentionsBot)
	if !ok {
		return
	}
	ctx := context.Background()
	slog.Info("debate trigger matched", "channel_id", event.ChannelID, "author_id", event.AuthorID, "subject", subject)

	threadID, err := b.discord.CreateThread(event.ChannelID, event.MessageID, threadName(subject))
	if err != nil {
		slog.Error("failed to create debate thread", "error", err, "channel_id", event.ChannelID)
		return
	}

	if _, err := b.manager.CreateSession(ctx, threadID, event.AuthorID, subject); err != nil {
		if errors.Is(err, debate.ErrDuplicateSession) {
			slog.Warn("debate session already exists for thread", "thread_id", threadID)
			return
		}
		slog.Error("failed to create debate session", "error", err, "thread_id", threadID)
		// The thread already exists at this point; leave an explanation
		// rather than an empty thread.
		b.send(threadID, apologyText)
		return
	}

	opening, err := b.withTyping(threadID, func() (string, error) {
		return b.manager.ProcessTurn(ctx, threadID, "", true, nil)
	})
	if err != nil {
		slog.Error("failed to generate opening statement", "error", err, "thread_id", threadID)
		b.send(threadID, apologyText)
		return
	}
	b.send(threadID, opening)
}

func (b *Bot) handleThreadMessage(event discord.MessageEvent) {
	ctx := context.Background()
	s, err := b.manager.GetSession(ctx, event.ChannelID)
	if err != nil {
		slog.Error("failed to look up debate session", "error", err, "thread_id", event.ChannelID)
		return
	}
	if s == nil || s.Status != debate.StatusActive {
		return
	}
	if s.OpponentID != event.AuthorID {
		// Only the registered opponent gets a rebuttal.
		return
	}

	reply, err := b.withTyping(event.ChannelID, func() (string, error) {
		return b.manager.ProcessTurn(ctx, event.ChannelID, event.Content, false, b.externalHistory(event.ChannelID))
	})
	if err != nil {
		if errors.Is(err, debate.ErrSessionNotFound) {
			return
		}
		slog.Error("failed to process debate turn", "error", err, "thread_id", event.ChannelID)
		b.send(event.ChannelID, apologyText)
		return
	}
	b.send(event.ChannelID, reply)

	after, err := b.manager.GetSession(ctx, event.ChannelID)
	if err != nil || after == nil {
		return
	}
	if after.Status == debate.StatusWon {
		b.send(event.ChannelID, victoryAnnouncement(after.FallacyCount))
		ended, err := b.manager.EndSession(ctx, event.ChannelID)
		if err != nil {
			slog.Error("failed to end debate session", "error", err, "thread_id", event.ChannelID)
			return
		}
		go b.finalizeDebate(ended, repository.DebateOutcomeWon)
	}
}

// externalHistory rebuilds the conversation from the thread itself, which is
// the authoritative record of what both sides actually said.
func (b *Bot) externalHistory(threadID string) []llm.Message {
	msgs, err := b.discord.ListRecentMessages(threadID, b.cfg.TranscriptCap)
	if err != nil {
		slog.Warn("failed to list thread history; falling back to session transcript", "error", err, "thread_id", threadID)
		return nil
	}
	history := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		role := llm.RoleUser
		if m.AuthorIsBot || m.AuthorID == b.botUserID {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	return history
}

// withTyping keeps the typing indicator alive while fn runs and stops it
// unconditionally when fn returns.
func (b *Bot) withTyping(channelID string, fn func() (string, error)) (string, error) {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(typingRefreshInterval)
		defer ticker.Stop()
		if err := b.discord.TriggerTyping(channelID); err != nil {
			slog.Debug("failed to trigger typing indicator", "error", err, "channel_id", channelID)
		}
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := b.discord.TriggerTyping(channelID); err != nil {
					slog.Debug("failed to trigger typing indicator", "error", err, "channel_id", channelID)
				}
			}
		}
	}()
	defer close(stop)
	return fn()
}

func (b *Bot) send(channelID, text string) {
	for _, chunk := range splitMessage(text, b.cfg.MessageCharLimit) {
		if err := b.discord.SendChannelMessage(channelID, chunk); err != nil {
			slog.Error("failed to send channel message", "error", err, "channel_id", channelID)
		}
	}
}

func (b *Bot) finalizeDebate(s *debate.Session, outcome repository.DebateOutcome) {
	ctx := context.Background()
	endedAt := b.clock()

	filename := fmt.Sprintf("debate-%s.txt", s.ThreadID)
	if err := b.discord.SendChannelMessageWithFile(discord.FileMessage{
		ChannelID: s.ThreadID,
		Content:   transcriptTitle,
		Filename:  filename,
		FileBody:  buildTranscriptText(s, endedAt),
	}); err != nil {
		slog.Error("failed to post debate transcript", "error", err, "thread_id", s.ThreadID)
	}

	if _, err := b.repo.ArchiveDebate(ctx, archiveInput(s, outcome, endedAt)); err != nil {
		slog.Error("failed to archive debate", "error", err, "thread_id", s.ThreadID)
	}

	if err := b.webhook.SendResult(ctx, buildResultPayload(s, string(outcome), endedAt)); err != nil {
		slog.Error("failed to send debate result webhook", "error", err, "thread_id", s.ThreadID)
	}
}

func archiveInput(s *debate.Session, outcome repository.DebateOutcome, endedAt time.Time) repository.ArchiveDebateInput {
	turns := make([]repository.ArchiveTurnInput, 0, len(s.Transcript))
	for i, turn := range s.Transcript {
		turns = append(turns, repository.ArchiveTurnInput{
			TurnIndex: i,
			Role:      turn.Role,
			Content:   turn.Content,
		})
	}
	return repository.ArchiveDebateInput{
		ThreadID:         s.ThreadID,
		OpponentID:       s.OpponentID,
		Subject:          s.Subject,
		Outcome:          outcome,
		FallacyCount:     s.FallacyCount,
		InactivityStreak: s.InactivityStreak,
		StartedAt:        s.CreatedAt,
		EndedAt:          endedAt,
		Turns:            turns,
	}
}
