package users

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nkorotkov/privateme/internal/common"
)

// MemoryRepository is an in-memory Repository used in tests and local
// development runs without postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]*User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, errors.New("email already registered")
	}
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}
