package roster

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one roster per operator. Rosters live in memory only and
// die with the process; nothing is persisted between sessions.
type Manager struct {
	mu      sync.Mutex
	rosters map[uuid.UUID]*Roster
}

func NewManager() *Manager {
	return &Manager{rosters: make(map[uuid.UUID]*Roster)}
}

// Get returns the operator's roster, creating an empty one on first use.
func (m *Manager) Get(userID uuid.UUID) *Roster {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rosters[userID]
	if !ok {
		r = New()
		m.rosters[userID] = r
	}
	return r
}

// MarkSent satisfies the dispatch service's marker dependency.
func (m *Manager) MarkSent(userID uuid.UUID, keys []string) {
	m.Get(userID).MarkSent(keys)
}
