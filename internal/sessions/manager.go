package sessions

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/umairazmat/Ai-Codify/internal/ideas"
)

const (
	DefaultTTL      = 24 * time.Hour
	CleanupInterval = 5 * time.Minute
)

// one browser's wizard progress. mu serializes transitions so a slow
// generator call cannot be raced by a second request for the same session.
// lastActivity lives outside mu so expiry checks never wait on a model call.
type Session struct {
	ID           string
	state        ideas.State
	lastActivity atomic.Int64 // unix nanos
	mu           sync.Mutex
}

func (s *Session) touch(t time.Time) {
	s.lastActivity.Store(t.UnixNano())
}

// manages wizard sessions in memory
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

// returns a new session manager and starts its cleanup goroutine
func NewManager(ttl time.Duration) *Manager {
	m := newManager(ttl, time.Now)

	go m.cleanupExpiredSessions(CleanupInterval)

	return m
}

func newManager(ttl time.Duration, now func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

// creates a new session at the first wizard step
func (m *Manager) CreateSession() *Session {
	session := &Session{
		ID:    uuid.NewString(),
		state: ideas.NewState(),
	}
	session.touch(m.now())

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// retrieves a live session by ID
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	session, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists || m.expired(session) {
		return nil, false
	}

	return session, true
}

// returns the session for sessionID, or a fresh one when the ID is empty,
// unknown or expired. client-chosen IDs are never adopted.
func (m *Manager) GetOrCreate(sessionID string) (*Session, bool) {
	if sessionID != "" {
		if session, ok := m.GetSession(sessionID); ok {
			return session, false
		}
	}

	return m.CreateSession(), true
}

// returns a copy of the session's current state
func (m *Manager) State(sessionID string) (ideas.State, error) {
	session, ok := m.lookup(sessionID)
	if !ok {
		return ideas.State{}, ErrSessionNotFound
	}

	session.touch(m.now())

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.state, nil
}

// applies a transition to the session's state while holding its lock.
// the returned state is stored even when fn also returns an error, which
// keeps failed transitions a no-op as long as fn returns its input.
func (m *Manager) Apply(sessionID string, fn func(ideas.State) (ideas.State, error)) (ideas.State, error) {
	session, ok := m.lookup(sessionID)
	if !ok {
		return ideas.State{}, ErrSessionNotFound
	}

	// an in-flight call keeps the session alive
	session.touch(m.now())

	session.mu.Lock()
	defer session.mu.Unlock()

	next, err := fn(session.state)
	session.state = next
	session.touch(m.now())

	return next, err
}

// removes a session
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// returns the number of tracked sessions
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// stops the cleanup goroutine
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *Manager) lookup(sessionID string) (*Session, bool) {
	m.mu.RLock()
	session, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if m.expired(session) {
		m.DeleteSession(sessionID)
		return nil, false
	}

	return session, true
}

func (m *Manager) expired(session *Session) bool {
	last := time.Unix(0, session.lastActivity.Load())

	return m.now().Sub(last) > m.ttl
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpiredSessions()
		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) removeExpiredSessions() int {
	m.mu.RLock()
	candidates := make([]*Session, 0)
	for _, session := range m.sessions {
		if m.expired(session) {
			candidates = append(candidates, session)
		}
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for _, session := range candidates {
		// touched since the scan
		if !m.expired(session) {
			continue
		}

		delete(m.sessions, session.ID)
		removed++
	}

	return removed
}
