package userRepo

import (
	"context"
	"sync"
	"time"

	"sitecms/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepo is an in-process UserRepository keyed by email.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (m *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	m.users[user.Email] = *user
	return nil
}

// Len returns the number of stored users.
func (m *MemoryUserRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
