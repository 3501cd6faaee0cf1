package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twin3-assistant-backend/internal/chat"
)

// Manager owns the live sessions, keyed by session id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	inv    *chat.Inventory
	remote chat.Completer
	opts   Options
	log    *zap.Logger
}

func NewManager(inv *chat.Inventory, remote chat.Completer, opts Options, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		inv:      inv,
		remote:   remote,
		opts:     opts,
		log:      log,
	}
}

// Create makes a fresh session under a new id.
func (m *Manager) Create() *Session {
	id := "s_" + uuid.NewString()
	s := New(id, m.inv, m.remote, m.opts, m.log)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.log.Info("session created", zap.String("session", id))
	return s
}

// Get returns the live session for id, if any.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes the session and forgets it. Pending scheduled work is
// cancelled before the state becomes unreachable.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
		m.log.Info("session removed", zap.String("session", id))
	}
}

// Shutdown closes every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
