package store

import "sync"

// MemoryStore is an in-memory [Store].
type MemoryStore struct {
	mu       sync.RWMutex
	settings Settings
	saved    bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a MemoryStore that already holds s.
func NewMemoryStoreWith(s Settings) *MemoryStore {
	return &MemoryStore{settings: s, saved: true}
}

// Load returns the last saved settings.
func (m *MemoryStore) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.saved {
		return Settings{}, ErrNotFound
	}
	return m.settings, nil
}

// Save replaces the held settings.
func (m *MemoryStore) Save(s Settings) error {
	m.mu.Lock()
	m.settings = s
	m.saved = true
	m.mu.Unlock()
	return nil
}
