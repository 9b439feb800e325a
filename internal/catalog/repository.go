package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog entry not found")

// Reader is the read side every catalog backend provides.
type Reader interface {
	Categories(ctx context.Context) ([]ProductCategory, error)
	Products(ctx context.Context) ([]Product, error)

	// Product looks up by ID or slug.
	Product(ctx context.Context, idOrSlug string) (*Product, error)

	// Options returns the shop-wide beverages and cakes offered with
	// products that carry no options of their own.
	Options(ctx context.Context) ([]Option, error)

	CateringItems(ctx context.Context) ([]CateringItem, error)
}

// Writer is implemented by backends the admin can edit.
type Writer interface {
	SaveProduct(ctx context.Context, p *Product) error
	SetProductImage(ctx context.Context, productID string, url string) error
}

type Repository interface {
	Reader
	Writer
}
