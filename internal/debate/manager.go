package debate

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/ronpakun/internal/completion"
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/generator"
	"github.com/foxseedlab/ronpakun/internal/llm"
)

const janitorInterval = time.Minute

// FallacyAnalyzer classifies one opponent message for logical fallacies.
// ok=false means the verdict is unavailable and the turn is scored leniently.
type FallacyAnalyzer interface {
	Analyze(ctx context.Context, text string) (string, bool)
}

// Manager owns the per-session debate state machine. All session mutation
// happens inside turn processing, serialized per thread.
type Manager struct {
	cfg      *config.Config
	store    Store
	gen      generator.Generator
	analyzer FallacyAnalyzer
	clock    func() time.Time

	mu        sync.Mutex
	turnLocks map[string]*sync.Mutex
}

func NewManager(cfg *config.Config, store Store, gen generator.Generator, analyzer FallacyAnalyzer) *Manager {
	return &Manager{
		cfg:       cfg,
		store:     store,
		gen:       gen,
		analyzer:  analyzer,
		clock:     time.Now,
		turnLocks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) CreateSession(ctx context.Context, threadID, opponentID, subject string) (*Session, error) {
	now := m.clock()
	s := &Session{
		ThreadID:       threadID,
		OpponentID:     opponentID,
		Subject:        subject,
		Status:         StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	slog.Info("debate session created", "thread_id", threadID, "opponent_id", opponentID, "subject", subject)
	return s, nil
}

// GetSession returns (nil, nil) when no session exists for the thread.
func (m *Manager) GetSession(ctx context.Context, threadID string) (*Session, error) {
	return m.store.Get(ctx, threadID)
}

// ProcessTurn scores the opponent message, updates the session counters and
// produces the bot's rebuttal. externalHistory, when non-empty, is the
// authoritative view of the hosting thread and replaces the session's own
// transcript for generation.
func (m *Manager) ProcessTurn(ctx context.Context, threadID, opponentMessage string, isOpening bool, externalHistory []llm.Message) (string, error) {
	lock := m.turnLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Get(ctx, threadID)
	if err != nil {
		return "", err
	}
	if s == nil {
		m.releaseTurnLock(threadID)
		return "", ErrSessionNotFound
	}

	s.LastActivityAt = m.clock()

	if isOpening {
		// A marker in the opening is spurious; strip it without scoring a win.
		text, _ := stripVictoryMarker(m.gen.GenerateOpening(ctx, s.Subject))
		s.Transcript = appendTurn(s.Transcript, llm.Message{Role: llm.RoleAssistant, Content: text}, m.cfg.TranscriptCap)
		if err := m.store.Update(ctx, s); err != nil {
			return "", err
		}
		return text, nil
	}

	m.scoreTurn(ctx, s, opponentMessage)

	s.Transcript = appendTurn(s.Transcript, llm.Message{Role: llm.RoleUser, Content: opponentMessage}, m.cfg.TranscriptCap)
	transcript := s.Transcript
	if len(externalHistory) > 0 {
		transcript = externalHistory
	}

	text, declared := stripVictoryMarker(m.gen.GenerateTurn(ctx, transcript, s.Subject, s.InactivityStreak))
	if declared {
		s.Status = StatusWon
		slog.Info("debate won by declaration", "thread_id", s.ThreadID)
	}

	s.Transcript = appendTurn(s.Transcript, llm.Message{Role: llm.RoleAssistant, Content: text}, m.cfg.TranscriptCap)
	if err := m.store.Update(ctx, s); err != nil {
		return "", err
	}
	return text, nil
}

// scoreTurn updates the inactivity streak and the fallacy count. Analysis
// failures count as "no fallacy detected"; scoring never aborts the turn.
func (m *Manager) scoreTurn(ctx context.Context, s *Session, opponentMessage string) {
	if ruleName, nonSubstantive := classifyNonSubstantive(opponentMessage); nonSubstantive {
		s.InactivityStreak++
		slog.Debug("non-substantive opponent turn", "thread_id", s.ThreadID, "rule", ruleName, "streak", s.InactivityStreak)
	} else {
		s.InactivityStreak = 0
	}

	verdict, ok := m.analyzer.Analyze(ctx, opponentMessage)
	if ok && !completion.IsCleanVerdict(verdict) {
		s.FallacyCount++
		slog.Info("fallacy detected", "thread_id", s.ThreadID, "verdict", verdict, "fallacy_count", s.FallacyCount)
	}

	if s.Status == StatusActive && s.FallacyCount >= m.cfg.FallacyThreshold {
		s.Status = StatusWon
		slog.Info("debate won on fallacy threshold", "thread_id", s.ThreadID, "fallacy_count", s.FallacyCount)
	}
}

// EndSession marks the session ended and schedules its best-effort removal
// after the grace window. Late reads racing the removal must tolerate absence.
func (m *Manager) EndSession(ctx context.Context, threadID string) (*Session, error) {
	lock := m.turnLock(threadID)
	lock.Lock()
	// The session is gone (or about to expire) once this returns, so its
	// turn lock entry goes with it.
	defer m.releaseTurnLock(threadID)
	defer lock.Unlock()

	s, err := m.store.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}

	s.Status = StatusEnded
	s.LastActivityAt = m.clock()
	if err := m.store.Update(ctx, s); err != nil {
		return nil, err
	}

	grace := time.Duration(m.cfg.SessionGraceMinutes) * time.Minute
	if err := m.store.ExpireAfter(ctx, threadID, grace); err != nil {
		slog.Warn("failed to schedule session removal", "thread_id", threadID, "error", err)
	}
	slog.Info("debate session ended", "thread_id", threadID, "fallacy_count", s.FallacyCount, "inactivity_streak", s.InactivityStreak)
	return s, nil
}

func (m *Manager) ActiveSessions(ctx context.Context) ([]*Session, error) {
	return m.store.ListActive(ctx)
}

// RunJanitor sweeps expired sessions until ctx is cancelled.
func (m *Manager) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.store.Sweep(ctx); err != nil {
				slog.Warn("session sweep failed", "error", err)
			}
		}
	}
}

func (m *Manager) turnLock(threadID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.turnLocks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		m.turnLocks[threadID] = lock
	}
	return lock
}

func (m *Manager) releaseTurnLock(threadID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turnLocks, threadID)
}

func stripVictoryMarker(text string) (string, bool) {
	if !strings.Contains(text, generator.VictoryMarker) {
		return text, false
	}
	return strings.TrimSpace(strings.ReplaceAll(text, generator.VictoryMarker, "")), true
}

func appendTurn(transcript []llm.Message, msg llm.Message, limit int) []llm.Message {
	transcript = append(transcript, msg)
	if len(transcript) > limit {
		transcript = transcript[len(transcript)-limit:]
	}
	return transcript
}
