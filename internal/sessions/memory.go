package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
)

// MemoryStore keeps sessions in process memory. Sessions die with the process.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]utils.SessionData
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]utils.SessionData),
		now:      time.Now,
	}
}

func (m *MemoryStore) FindSessionByID(_ context.Context, id string) (utils.SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return utils.SessionData{}, common.ErrNotFound
	}
	if s.Expired(m.now()) {
		delete(m.sessions, id)
		return utils.SessionData{}, common.ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) SaveSession(_ context.Context, s utils.SessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
