package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Categories
// --------------------------------------------------
func (r *PostgresRepository) Categories(ctx context.Context) ([]ProductCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, icon
		FROM product_categories
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []ProductCategory
	for rows.Next() {
		var c ProductCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// --------------------------------------------------
// Products
// --------------------------------------------------
const productColumns = `
	p.id,
	p.slug,
	COALESCE(p.category_id, ''),
	COALESCE(c.name, ''),
	p.name,
	p.description,
	p.price,
	p.image,
	p.type,
	p.featured,
	p.features,
	p.options,
	p.additions,
	p.bundle_types
`

func (r *PostgresRepository) Products(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN product_categories c ON c.id = p.category_id
		ORDER BY p.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *PostgresRepository) Product(ctx context.Context, idOrSlug string) (*Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN product_categories c ON c.id = p.category_id
		WHERE p.id = $1 OR p.slug = $1
		LIMIT 1
	`, idOrSlug)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var productType string
	var features, options, additions, bundles []byte

	if err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.CategoryID,
		&p.Category,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&productType,
		&p.Featured,
		&features,
		&options,
		&additions,
		&bundles,
	); err != nil {
		return nil, err
	}
	p.Type = ProductType(productType)

	// malformed json columns degrade to empty lists
	decodeJSON(features, &p.Features)
	decodeJSON(options, &p.Options)
	decodeJSON(additions, &p.Additions)
	decodeJSON(bundles, &p.BundleTypes)

	return &p, nil
}

func decodeJSON(raw []byte, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// --------------------------------------------------
// Options & catering
// --------------------------------------------------
func (r *PostgresRepository) Options(ctx context.Context) ([]Option, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category, name, price, description
		FROM catalog_options
		ORDER BY category, position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var (
			o        Option
			category string
		)
		if err := rows.Scan(&o.ID, &category, &o.Name, &o.Price, &o.Description); err != nil {
			return nil, err
		}
		o.Category = Category(category)
		options = append(options, o)
	}

	return options, rows.Err()
}

func (r *PostgresRepository) CateringItems(ctx context.Context) ([]CateringItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, image, type, options
		FROM catering_items
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CateringItem
	for rows.Next() {
		var (
			item     CateringItem
			itemType string
			options  []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Image, &itemType, &options); err != nil {
			return nil, err
		}
		item.Type = CateringType(itemType)
		decodeJSON(options, &item.Options)
		items = append(items, item)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// Admin writes
// --------------------------------------------------
func (r *PostgresRepository) SaveProduct(ctx context.Context, p *Product) error {
	return upsertProduct(ctx, r.db, p)
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertProduct(ctx context.Context, db execer, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	options, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}
	additions, err := json.Marshal(p.Additions)
	if err != nil {
		return err
	}
	bundles, err := json.Marshal(p.BundleTypes)
	if err != nil {
		return err
	}

	var categoryID *string
	if p.CategoryID != "" {
		categoryID = &p.CategoryID
	}

	_, err = db.Exec(ctx, `
		INSERT INTO products (
			id, slug, category_id, name, description, price, image,
			type, featured, features, options, additions, bundle_types
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id)
		DO UPDATE SET
			slug = EXCLUDED.slug,
			category_id = EXCLUDED.category_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image = EXCLUDED.image,
			type = EXCLUDED.type,
			featured = EXCLUDED.featured,
			features = EXCLUDED.features,
			options = EXCLUDED.options,
			additions = EXCLUDED.additions,
			bundle_types = EXCLUDED.bundle_types,
			updated_at = now()
	`,
		p.ID,
		p.Slug,
		categoryID,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		string(p.Type),
		p.Featured,
		features,
		options,
		additions,
		bundles,
	)

	return err
}

func (r *PostgresRepository) SetProductImage(ctx context.Context, productID string, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE products
		SET image = $1,
		    updated_at = now()
		WHERE id = $2
	`, url, productID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Sync
// --------------------------------------------------

// Import replaces the stored catalog with snap in one transaction.
func (r *PostgresRepository) Import(ctx context.Context, snap *Snapshot) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, table := range []string{"products", "catalog_options", "catering_items", "product_categories"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for i, c := range snap.Categories {
			_, err := tx.Exec(ctx, `
				INSERT INTO product_categories (id, name, description, icon, position)
				VALUES ($1,$2,$3,$4,$5)
			`, c.ID, c.Name, c.Description, c.Icon, i)
			if err != nil {
				return fmt.Errorf("category %s: %w", c.ID, err)
			}
		}

		for i, o := range snap.Options {
			_, err := tx.Exec(ctx, `
				INSERT INTO catalog_options (id, category, name, price, description, position)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, o.ID, string(o.Category), o.Name, o.Price, o.Description, i)
			if err != nil {
				return fmt.Errorf("option %s: %w", o.ID, err)
			}
		}

		for i, item := range snap.Catering {
			options, err := json.Marshal(item.Options)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO catering_items (id, name, description, image, type, options, position)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, item.ID, item.Name, item.Description, item.Image, string(item.Type), options, i)
			if err != nil {
				return fmt.Errorf("catering %s: %w", item.ID, err)
			}
		}

		known := make(map[string]bool, len(snap.Categories))
		for _, c := range snap.Categories {
			known[c.ID] = true
		}

		for _, p := range snap.Products {
			if !known[p.CategoryID] {
				p.CategoryID = ""
			}
			if err := upsertProduct(ctx, tx, &p); err != nil {
				return fmt.Errorf("product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}
