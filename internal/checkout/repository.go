package checkout

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository stores orders handed off to checkout or WhatsApp.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	List(ctx context.Context, limit int) ([]Order, error)
}

type InMemoryRepository struct {
	mu     sync.Mutex
	orders []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Save(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	r.orders = append(r.orders, *o)
	return nil
}

// List returns the newest orders first.
func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]Order(nil), r.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
