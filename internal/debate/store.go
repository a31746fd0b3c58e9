package debate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/foxseedlab/ronpakun/internal/llm"
)

var (
	ErrDuplicateSession = errors.New("a debate session already exists for this thread")
	ErrSessionNotFound  = errors.New("no debate session exists for this thread")
)

// Store holds debate sessions. Get returns (nil, nil) for an absent session;
// removal after ExpireAfter is best-effort and may race with late reads.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, threadID string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, threadID string) error
	ListActive(ctx context.Context) ([]*Session, error)
	// ExpireAfter schedules removal of the session once ttl has elapsed.
	ExpireAfter(ctx context.Context, threadID string, ttl time.Duration) error
	// Sweep removes sessions whose expiry deadline has passed.
	Sweep(ctx context.Context) error
}

// MemoryStore is the default in-process store. Expiry deadlines are checked
// against an injected clock on access and during Sweep, so the grace-window
// purge is deterministic under test.
type MemoryStore struct {
	clock func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	expiries map[string]time.Time
}

func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		clock:    clock,
		sessions: make(map[string]*Session),
		expiries: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	if _, exists := m.sessions[s.ThreadID]; exists {
		return ErrDuplicateSession
	}
	m.sessions[s.ThreadID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, threadID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	return m.sessions[threadID], nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ThreadID]; !exists {
		return ErrSessionNotFound
	}
	m.sessions[s.ThreadID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, threadID)
	delete(m.expiries, threadID)
	return nil
}

func (m *MemoryStore) ListActive(_ context.Context) ([]*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	// Snapshot copies: callers must not alias state that is only safe to
	// touch under this lock.
	list := make([]*Session, 0)
	for _, s := range m.sessions {
		if s.Status != StatusActive {
			continue
		}
		copied := *s
		copied.Transcript = append([]llm.Message(nil), s.Transcript...)
		list = append(list, &copied)
	}
	return list, nil
}

func (m *MemoryStore) ExpireAfter(_ context.Context, threadID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[threadID]; !exists {
		return ErrSessionNotFound
	}
	m.expiries[threadID] = m.clock().Add(ttl)
	return nil
}

func (m *MemoryStore) Sweep(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	return nil
}

func (m *MemoryStore) purgeExpiredLocked() {
	now := m.clock()
	for threadID, deadline := range m.expiries {
		if now.Before(deadline) {
			continue
		}
		delete(m.sessions, threadID)
		delete(m.expiries, threadID)
	}
}
