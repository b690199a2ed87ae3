package store

import (
	"sync"

	"github.com/feltworks/casino-core/internal/ledger"
)

// Memory is an in-memory Store for tests.
type Memory struct {
	mu    sync.Mutex
	snap  ledger.Snapshot
	saved bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save keeps a deep copy of the snapshot.
func (m *Memory) Save(snap ledger.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	games := make(map[string]ledger.GameStats, len(snap.Games))
	for k, v := range snap.Games {
		games[k] = v
	}
	snap.Games = games
	m.snap = snap
	m.saved = true
	return nil
}

// Load returns the last saved snapshot, if any.
func (m *Memory) Load() (ledger.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.saved {
		return ledger.Snapshot{}, false, nil
	}
	games := make(map[string]ledger.GameStats, len(m.snap.Games))
	for k, v := range m.snap.Games {
		games[k] = v
	}
	snap := m.snap
	snap.Games = games
	return snap, true, nil
}

// Clear forgets the saved snapshot.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = ledger.Snapshot{}
	m.saved = false
	return nil
}
