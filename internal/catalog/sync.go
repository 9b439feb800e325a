package catalog

import (
	"context"
	"fmt"
)

// Snapshot is the whole catalog as read from one backend.
type Snapshot struct {
	Categories []ProductCategory
	Products   []Product
	Options    []Option
	Catering   []CateringItem
}

// Mirror accepts a full snapshot and makes it its current catalog.
type Mirror interface {
	Import(ctx context.Context, snap *Snapshot) error
}

func TakeSnapshot(ctx context.Context, from Reader) (*Snapshot, error) {
	categories, err := from.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	products, err := from.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	options, err := from.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	catering, err := from.CateringItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("catering: %w", err)
	}

	return &Snapshot{
		Categories: categories,
		Products:   products,
		Options:    options,
		Catering:   catering,
	}, nil
}

// Sync copies the catalog in from into to. Products that fail
// validation are skipped and counted.
func Sync(ctx context.Context, from Reader, to Mirror) (imported, skipped int, err error) {
	snap, err := TakeSnapshot(ctx, from)
	if err != nil {
		return 0, 0, err
	}

	valid := snap.Products[:0:0]
	for _, p := range snap.Products {
		if err := ValidateProduct(&p); err != nil {
			skipped++
			continue
		}
		valid = append(valid, p)
	}
	snap.Products = valid

	if err := to.Import(ctx, snap); err != nil {
		return 0, skipped, fmt.Errorf("import: %w", err)
	}
	return len(valid), skipped, nil
}
