package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

func scanProduct(row interface{ Scan(dest ...any) error }) (*model.Product, error) {
	var (
		p           model.Product
		description sql.NullString
		imageURL    sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.PriceSAR,
		&imageURL,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}

// Create inserts a new product row and returns the stored record.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, name, description, price_sar, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, price_sar, image_url, is_active, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		p.Description,
		p.PriceSAR,
		p.ImageURL,
		p.IsActive,
		p.CreatedAt,
	)
	return scanProduct(row)
}

// FindActiveByID fetches a single active product by its ID.
func (r *ProductPostgres) FindActiveByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `
		SELECT id, name, description, price_sar, image_url, is_active, created_at
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// ListActive returns all active products, newest first.
func (r *ProductPostgres) ListActive(ctx context.Context) ([]model.Product, error) {
	const q = `
		SELECT id, name, description, price_sar, image_url, is_active, created_at
		FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// PricesByIDs returns unit prices for the given active product ids.
// Ids not found are absent from the returned map.
func (r *ProductPostgres) PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	q := fmt.Sprintf(`
		SELECT id, price_sar
		FROM products
		WHERE is_active = TRUE AND id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[string]decimal.Decimal, len(ids))
	for rows.Next() {
		var (
			id    string
			price decimal.Decimal
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Deactivate soft-deletes a product so it disappears from the public
// catalog while order history keeps a valid reference.
func (r *ProductPostgres) Deactivate(ctx context.Context, id string) error {
	const q = `UPDATE products SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
