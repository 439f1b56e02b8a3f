package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item in the catalog.
// Pure domain model with no database-specific dependencies or tags.
// Prices are fixed-point decimals; floats are never used for money.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	PriceSAR    decimal.Decimal `json:"price_sar"`
	ImageURL    *string         `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}
