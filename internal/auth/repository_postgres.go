package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAdminRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAdminRepository(db *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) Save(ctx context.Context, admin *Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}

	query := `
		INSERT INTO admins (id, name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password = EXCLUDED.password, role = EXCLUDED.role
	`
	_, err := r.db.Exec(ctx, query,
		admin.ID, admin.Name, strings.ToLower(admin.Email), admin.Password, admin.Role,
	)
	return err
}

func (r *PostgresAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`,
		strings.ToLower(email),
	).Scan(&exists)
	return exists, err
}

func (r *PostgresAdminRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, name, email, password, role
		FROM admins WHERE email = $1
	`
	row := r.db.QueryRow(ctx, query, strings.ToLower(email))

	admin := &Admin{}
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Password, &admin.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}
