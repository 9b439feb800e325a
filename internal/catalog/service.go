package catalog

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage uploads product images and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File, contentType string) (string, error)
}

type Service struct {
	reader  Reader
	writer  Writer
	storage Storage
}

// NewService wires a catalog reader with an optional writer and storage;
// admin operations fail with ErrReadOnly when either is nil.
func NewService(reader Reader, writer Writer, storage Storage) *Service {
	return &Service{reader: reader, writer: writer, storage: storage}
}

var ErrReadOnly = errors.New("catalog backend is read-only")

func (s *Service) Categories(ctx context.Context) ([]ProductCategory, error) {
	return s.reader.Categories(ctx)
}

// Products lists the menu; category filters by category name, the way the
// storefront buttons do. An empty category returns everything.
func (s *Service) Products(ctx context.Context, category string) ([]Product, error) {
	products, err := s.reader.Products(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) || p.CategoryID == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *Service) Product(ctx context.Context, idOrSlug string) (*Product, error) {
	return s.reader.Product(ctx, idOrSlug)
}

// Catering lists catering items, optionally only "dulce" or "salado".
func (s *Service) Catering(ctx context.Context, t CateringType) ([]CateringItem, error) {
	items, err := s.reader.CateringItems(ctx)
	if err != nil {
		return nil, err
	}
	if t == "" {
		return items, nil
	}

	filtered := make([]CateringItem, 0, len(items))
	for _, item := range items {
		if item.Type == t {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Configurable returns the product ready for the order engine. Products
// with no options of their own get the shop-wide beverages and cakes.
// Catering items resolve too, by ID.
func (s *Service) Configurable(ctx context.Context, id string) (Product, error) {
	p, err := s.reader.Product(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return s.cateringProduct(ctx, id)
	}
	if err != nil {
		return Product{}, err
	}

	if p.Type == TypeBowl || hasOptions(p.Options) {
		return *p, nil
	}

	shared, err := s.reader.Options(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("load shared options: %w", err)
	}

	p.Options = make(map[Category][]Option)
	for _, o := range shared {
		switch o.Category {
		case HotBeverage, ColdBeverage, Cake:
			p.Options[o.Category] = append(p.Options[o.Category], o)
		}
	}
	return *p, nil
}

func (s *Service) cateringProduct(ctx context.Context, id string) (Product, error) {
	items, err := s.reader.CateringItems(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item.AsProduct(), nil
		}
	}
	return Product{}, ErrNotFound
}

func hasOptions(m map[Category][]Option) bool {
	for _, opts := range m {
		if len(opts) > 0 {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

// SaveProduct validates and stores a product.
func (s *Service) SaveProduct(ctx context.Context, p *Product) error {
	if s.writer == nil {
		return ErrReadOnly
	}
	if err := ValidateProduct(p); err != nil {
		return err
	}
	return s.writer.SaveProduct(ctx, p)
}

// UploadImage stores the file and points the product at it.
func (s *Service) UploadImage(
	ctx context.Context,
	productID string,
	file multipart.File,
	filename string,
	contentType string,
) (string, error) {

	if s.writer == nil || s.storage == nil {
		return "", ErrReadOnly
	}
	if err := ValidateImageExtension(filename); err != nil {
		return "", err
	}

	if _, err := s.reader.Product(ctx, productID); err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"products/%s/%s%s",
		productID,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if err := s.writer.SetProductImage(ctx, productID, url); err != nil {
		return "", err
	}
	return url, nil
}
