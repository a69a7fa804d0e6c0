package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"menu-planner/internal/api"
)

const productsMetaKey = "products"

// ProductStore persists the product catalog between sessions so the
// ingredient editor keeps working through transient network failures.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a ProductStore on an existing cache connection.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db.SQL}
}

// Replace swaps the cached product list wholesale and stamps the refresh
// time.
func (s *ProductStore) Replace(ctx context.Context, products []api.Product, refreshedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear cached products: %w", err)
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, unit, category) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Unit, string(p.Category))
		if err != nil {
			return fmt.Errorf("failed to cache product %q: %w", p.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cache_meta (key, refreshed_at) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET refreshed_at = excluded.refreshed_at`,
		productsMetaKey, refreshedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to stamp product cache: %w", err)
	}

	return tx.Commit()
}

// Load returns the cached product list and when it was refreshed. A cache
// that was never filled returns an empty list and a zero time.
func (s *ProductStore) Load(ctx context.Context) ([]api.Product, time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit, category FROM products ORDER BY name`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read cached products: %w", err)
	}
	defer rows.Close()

	var products []api.Product
	for rows.Next() {
		var p api.Product
		var category string
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &category); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cached product: %w", err)
		}
		p.Category = api.Category(category)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate cached products: %w", err)
	}

	var refreshedAt time.Time
	err = s.db.QueryRowContext(ctx,
		`SELECT refreshed_at FROM cache_meta WHERE key = ?`, productsMetaKey).Scan(&refreshedAt)
	if err == sql.ErrNoRows {
		return products, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read product cache stamp: %w", err)
	}

	return products, refreshedAt, nil
}
