package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []ProductCategory
	products   map[string]*Product
	options    []Option
	catering   []CateringItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		products: make(map[string]*Product),
	}
}

// NewSeededRepository returns a repository holding the shop's default menu.
func NewSeededRepository() *InMemoryRepository {
	r := NewInMemoryRepository()
	r.categories = append(r.categories, seedCategories...)
	r.options = append(r.options, seedOptions...)
	r.catering = append(r.catering, seedCatering...)
	for i := range seedProducts {
		p := seedProducts[i]
		r.products[p.ID] = &p
	}
	return r
}

func (r *InMemoryRepository) Categories(ctx context.Context) ([]ProductCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ProductCategory(nil), r.categories...), nil
}

// Products are returned ordered by name, like the CMS query.
func (r *InMemoryRepository) Products(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) Product(ctx context.Context, idOrSlug string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.products[idOrSlug]; ok {
		cp := *p
		return &cp, nil
	}
	for _, p := range r.products {
		if p.Slug != "" && p.Slug == idOrSlug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Options(ctx context.Context) ([]Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Option(nil), r.options...), nil
}

func (r *InMemoryRepository) CateringItems(ctx context.Context) ([]CateringItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]CateringItem(nil), r.catering...), nil
}

func (r *InMemoryRepository) SaveProduct(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *InMemoryRepository) SetProductImage(ctx context.Context, productID string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return ErrNotFound
	}
	p.Image = url
	return nil
}

// Slugify lowercases name and joins its words with dashes, dropping
// Spanish accents.
func Slugify(name string) string {
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	)
	s := replacer.Replace(strings.ToLower(strings.TrimSpace(name)))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Import replaces the whole catalog with snap.
func (r *InMemoryRepository) Import(ctx context.Context, snap *Snapshot) error {
	products := make(map[string]*Product, len(snap.Products))
	for i := range snap.Products {
		p := snap.Products[i]
		products[p.ID] = &p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append([]ProductCategory(nil), snap.Categories...)
	r.options = append([]Option(nil), snap.Options...)
	r.catering = append([]CateringItem(nil), snap.Catering...)
	r.products = products
	return nil
}
