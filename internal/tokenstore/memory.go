package tokenstore

import (
	"context"
	"sync"

	"github.com/krancour/yuadmin/sdk/api"
)

type memoryStore struct {
	mu      sync.RWMutex
	session session
	onClear func()
}

// NewMemoryStore returns a Store that lives only as long as the process.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Token = token
	return nil
}

func (m *memoryStore) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token, nil
}

func (m *memoryStore) SetUser(_ context.Context, user api.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.User = &user
	return nil
}

func (m *memoryStore) User(context.Context) (*api.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session.User == nil {
		return nil, nil
	}
	user := *m.session.User
	return &user, nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.session = session{}
	m.mu.Unlock()
	if m.onClear != nil {
		m.onClear()
	}
	return nil
}
