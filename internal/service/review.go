package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// Review decisions accepted from the administrator.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ReviewResult reports the statuses written by a review.
type ReviewResult struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
	ProofStatus string `json:"proof_status"`
}

// OrderListResult is the service-level DTO for paginated admin order lists.
type OrderListResult struct {
	Items []model.Order `json:"data"`
	Total int           `json:"total"`
}

// ReviewService defines the administrator's manual review use cases.
type ReviewService interface {
	// Review approves or rejects an order that has a submitted proof.
	// The proof and the order get the resulting status in a single
	// transaction; the note, when provided, replaces the proof note.
	Review(ctx context.Context, orderID, decision string, note *string) (*ReviewResult, error)

	// ListOrders returns orders with the given status (default
	// proof_submitted), newest first, paginated.
	ListOrders(ctx context.Context, status string, limit, offset int) (*OrderListResult, error)
}

type reviewService struct {
	orders repository.OrderRepository
	proofs repository.PaymentProofRepository
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(orders repository.OrderRepository, proofs repository.PaymentProofRepository) ReviewService {
	return &reviewService{orders: orders, proofs: proofs}
}

func (s *reviewService) Review(ctx context.Context, orderID, decision string, note *string) (*ReviewResult, error) {
	if orderID == "" {
		return nil, ErrIDRequired
	}

	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}

	orderStatus := model.OrderStatusApproved
	proofStatus := model.ProofStatusApproved
	if decision == DecisionReject {
		orderStatus = model.OrderStatusRejected
		proofStatus = model.ProofStatusRejected
	}

	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if _, err := s.proofs.FindByOrderID(ctx, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoProofToReview
		}
		return nil, err
	}

	if err := s.proofs.UpdateReview(ctx, orderID, proofStatus, note, orderStatus); err != nil {
		return nil, err
	}

	return &ReviewResult{
		OrderID:     orderID,
		OrderStatus: orderStatus,
		ProofStatus: proofStatus,
	}, nil
}

func (s *reviewService) ListOrders(ctx context.Context, status string, limit, offset int) (*OrderListResult, error) {
	if status == "" {
		status = model.OrderStatusProofSubmitted
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.orders.ListByStatus(ctx, status, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}
