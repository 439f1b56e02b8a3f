package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status lifecycle: pending_payment -> proof_submitted -> approved | rejected.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusProofSubmitted = "proof_submitted"
	OrderStatusApproved       = "approved"
	OrderStatusRejected       = "rejected"
)

// Order is a customer order awaiting bank-transfer payment and manual review.
// The total is computed server-side from catalog prices at creation time.
type Order struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	TotalSAR      decimal.Decimal `json:"total_sar"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	AddressText   string          `json:"address_text"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem is a single line of an order. PriceSAR is the unit price
// snapshotted from the product at order time.
type OrderItem struct {
	ID        string          `json:"-"`
	OrderID   string          `json:"-"`
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	PriceSAR  decimal.Decimal `json:"price_sar"`
}
