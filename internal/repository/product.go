package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"shopapi/internal/model"
)

// ProductRepository defines data access for catalog products using SQL queries only.
// No business logic here — strictly persistence operations.
type ProductRepository interface {
	// Create inserts a new product and returns the stored row
	// (including values filled in by database defaults).
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// FindActiveByID returns an active product by ID.
	// Inactive products are treated as absent (sql.ErrNoRows).
	FindActiveByID(ctx context.Context, id string) (*model.Product, error)

	// ListActive returns all active products, newest first.
	ListActive(ctx context.Context) ([]model.Product, error)

	// PricesByIDs returns a product-id -> unit-price map covering the
	// subset of ids that exist and are active. Missing ids are simply
	// absent from the map; the caller decides whether that is an error.
	PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)

	// Deactivate sets is_active = false. Returns sql.ErrNoRows when the
	// product does not exist or is already inactive.
	Deactivate(ctx context.Context, id string) error
}
