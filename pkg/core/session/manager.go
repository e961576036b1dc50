package session

import "sync"

// Manager tracks live sessions by ID for the API layer. A single-user CLI
// run uses a lone AnalysisSession directly and never needs this.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*AnalysisSession
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*AnalysisSession)}
}

// Create registers a new session and returns it.
func (m *Manager) Create() *AnalysisSession {
	s := New()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Lookup returns the session for an ID.
func (m *Manager) Lookup(id string) (*AnalysisSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Drop removes a session.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
