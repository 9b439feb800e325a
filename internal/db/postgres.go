package db

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the pool and makes sure the schema exists.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}

var schema = []string{
	// -------------------------------
	// CATALOG
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS product_categories (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon VARCHAR(50) NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(100) PRIMARY KEY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		category_id VARCHAR(100) REFERENCES product_categories(id),
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL DEFAULT 0,
		image VARCHAR(500) NOT NULL DEFAULT '',
		type VARCHAR(20) NOT NULL DEFAULT 'simple',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		features JSONB NOT NULL DEFAULT '[]',
		options JSONB NOT NULL DEFAULT '{}',
		additions JSONB NOT NULL DEFAULT '[]',
		bundle_types JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_options (
		id VARCHAR(100) PRIMARY KEY,
		category VARCHAR(50) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS catering_items (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image VARCHAR(500) NOT NULL DEFAULT '',
		type VARCHAR(20) NOT NULL,
		options JSONB NOT NULL DEFAULT '[]',
		position INT NOT NULL DEFAULT 0
	)`,

	// -------------------------------
	// ORDERS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		product_id VARCHAR(100) NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		total BIGINT NOT NULL,
		summary JSONB NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		preference_id VARCHAR(255) NOT NULL DEFAULT '',
		channel VARCHAR(20) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)`,

	// -------------------------------
	// ADMINS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'ADMIN',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}
