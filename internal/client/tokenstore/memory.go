package tokenstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// MemoryStore is a process-local Store, used for ephemeral runs and tests.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, token string, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &Credentials{Token: token, User: user}
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil || m.creds.Token == "" {
		return nil, ErrNoCredentials
	}
	c := *m.creds
	return &c, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
