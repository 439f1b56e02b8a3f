package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shopapi/internal/model"
)

type MockPaymentProofRepository struct {
	mock.Mock
}

func (m *MockPaymentProofRepository) CreateAndMarkSubmitted(ctx context.Context, p *model.PaymentProof) (*model.PaymentProof, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentProof), args.Error(1)
}

func (m *MockPaymentProofRepository) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentProof, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentProof), args.Error(1)
}

func (m *MockPaymentProofRepository) UpdateReview(ctx context.Context, orderID, proofStatus string, note *string, orderStatus string) error {
	args := m.Called(ctx, orderID, proofStatus, note, orderStatus)
	return args.Error(0)
}
