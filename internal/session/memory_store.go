package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sealed sessions in process. Used in development and tests.
type MemoryStore struct {
	mu    sync.Mutex
	codec *Codec
	items map[string][]byte
	now   func() time.Time
}

func NewMemoryStore(codec *Codec) *MemoryStore {
	return &MemoryStore{codec: codec, items: make(map[string][]byte), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	sealed, ok := m.items[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s, err := m.codec.Open(sealed)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.items, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	sealed, err := m.codec.Seal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[s.ID] = sealed
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
