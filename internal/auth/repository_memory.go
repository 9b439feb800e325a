package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type InMemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]*Admin
}

func NewInMemoryAdminRepository() *InMemoryAdminRepository {
	return &InMemoryAdminRepository{
		admins: make(map[string]*Admin),
	}
}

func (r *InMemoryAdminRepository) Save(ctx context.Context, admin *Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[strings.ToLower(admin.Email)] = admin
	return nil
}

func (r *InMemoryAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.admins[strings.ToLower(email)]
	return exists, nil
}

func (r *InMemoryAdminRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[strings.ToLower(email)]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}
