package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory for STORE_DRIVER=memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*WebUser
	roles map[string]map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]*WebUser),
		roles: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryRepository) CreateUser(ctx context.Context, email string, passwordHash string) (*WebUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	u := &WebUser{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*WebUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) GetUserByID(ctx context.Context, id string) (*WebUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryRepository) CountRoles(ctx context.Context, userID, role string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.roles[userID][role]; ok {
		return 1, nil
	}
	return 0, nil
}

func (m *MemoryRepository) GrantRole(ctx context.Context, userID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roles[userID] == nil {
		m.roles[userID] = make(map[string]struct{})
	}
	m.roles[userID][role] = struct{}{}
	return nil
}
