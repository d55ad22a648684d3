package store

import (
	"context"
	"sync"
	"time"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

// Memory is an in-process SessionStore. Used by tests and by short-lived
// invocations that should not leave a credential behind.
type Memory struct {
	mu   sync.RWMutex
	cred *domain.Credential
	user *domain.User
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Save(_ context.Context, token string, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &domain.Credential{Token: token, IssuedAt: m.now().UTC()}
	u := user
	m.user = &u
	return nil
}

func (m *Memory) Load(_ context.Context) (*domain.Credential, *domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred == nil || m.user == nil {
		return nil, nil, nil
	}
	cred := *m.cred
	user := *m.user
	return &cred, &user, nil
}

func (m *Memory) UpdateUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil
	}
	u := user
	m.user = &u
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	m.user = nil
	return nil
}
