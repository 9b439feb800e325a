package checkout

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	summary, err := json.Marshal(o.Summary)
	if err != nil {
		return err
	}

	var preferenceID *string
	if o.PreferenceID != "" {
		preferenceID = &o.PreferenceID
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id,
			product_id,
			product_name,
			total,
			summary,
			notes,
			preference_id,
			channel
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`,
		o.ID,
		o.ProductID,
		o.ProductName,
		o.Total,
		summary,
		o.Notes,
		preferenceID,
		string(o.Channel),
	).Scan(&o.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			product_id,
			product_name,
			total,
			summary,
			notes,
			COALESCE(preference_id, ''),
			channel,
			created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var (
			o       Order
			summary []byte
			channel string
		)
		if err := rows.Scan(
			&o.ID,
			&o.ProductID,
			&o.ProductName,
			&o.Total,
			&summary,
			&o.Notes,
			&o.PreferenceID,
			&channel,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Channel = Channel(channel)
		if len(summary) > 0 {
			_ = json.Unmarshal(summary, &o.Summary)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
