package repository

import (
	"context"

	"shopapi/internal/model"
)

// PaymentProofRepository defines data access for payment proofs.
// An order has at most one proof (unique order_id).
type PaymentProofRepository interface {
	// CreateAndMarkSubmitted inserts the proof and moves its order to
	// proof_submitted in a single transaction, so the proof row and the
	// order status can never diverge. Returns the stored row, or
	// sql.ErrNoRows when the order does not exist.
	CreateAndMarkSubmitted(ctx context.Context, p *model.PaymentProof) (*model.PaymentProof, error)

	// FindByOrderID returns the proof attached to an order.
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentProof, error)

	// UpdateReview sets the proof status and the order status together
	// in one transaction. When note is non-nil, it replaces the reviewer
	// note. Returns sql.ErrNoRows when the order has no proof.
	UpdateReview(ctx context.Context, orderID, proofStatus string, note *string, orderStatus string) error
}
