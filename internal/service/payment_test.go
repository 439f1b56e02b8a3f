package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopapi/internal/model"
	repoMocks "shopapi/internal/repository/mocks"
	"shopapi/internal/storage"
	storeMocks "shopapi/internal/storage/mocks"
)

func TestProofObjectKey(t *testing.T) {
	tests := []struct {
		name             string
		originalFilename string
		contentType      string
		wantExt          string
	}{
		{"extension from filename", "receipt.png", "image/png", ".png"},
		{"jpeg alias normalized", "receipt.JPEG", "image/jpeg", ".jpeg"},
		{"non-ascii filename ignored", "إيصال.pdf", "application/pdf", ".pdf"},
		{"unusable extension falls back to content type", "receipt.exe", "image/jpeg", ".jpg"},
		{"no extension falls back to content type", "receipt", "application/pdf", ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := proofObjectKey("order-1", tt.originalFilename, tt.contentType)

			assert.True(t, strings.HasPrefix(key, "order-1/"))
			assert.True(t, strings.HasSuffix(key, tt.wantExt), "key %q should end with %q", key, tt.wantExt)
			// The original filename never leaks into the key
			assert.NotContains(t, key, "receipt")
		})
	}
}

func TestPaymentService_UploadProof(t *testing.T) {
	ctx := context.Background()

	amount := decimal.RequireFromString("150.00")
	validInput := func() UploadProofInput {
		return UploadProofInput{
			OrderID:     "order-1",
			Filename:    "receipt.jpg",
			ContentType: "image/jpeg",
			Size:        1024,
			AmountSAR:   &amount,
		}
	}

	tests := []struct {
		name       string
		in         UploadProofInput
		setupMocks func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				r := strings.NewReader("jpeg bytes")
				mOrders.On("FindByID", ctx, "order-1").
					Return(&model.Order{ID: "order-1", Status: model.OrderStatusPendingPayment}, nil)
				mProofs.On("FindByOrderID", ctx, "order-1").Return(nil, sql.ErrNoRows)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "order-1/") && strings.HasSuffix(key, ".jpg")
				}), r, storage.PutObjectOptions{
					Size:        1024,
					ContentType: "image/jpeg",
				}).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
				}, nil)
				mProofs.On("CreateAndMarkSubmitted", ctx, mock.MatchedBy(func(p *model.PaymentProof) bool {
					return p.OrderID == "order-1" && p.Status == model.ProofStatusSubmitted && p.AmountSAR != nil
				})).Return(&model.PaymentProof{OrderID: "order-1", Status: model.ProofStatusSubmitted}, nil)
				return r
			},
		},
		{
			name: "validation - nil reader",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name: "validation - unsupported content type",
			in: UploadProofInput{
				OrderID:     "order-1",
				Filename:    "receipt.gif",
				ContentType: "image/gif",
				Size:        10,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				return strings.NewReader("gif")
			},
			wantErr: ErrUnsupportedProofType,
		},
		{
			name: "validation - file too large",
			in: UploadProofInput{
				OrderID:     "order-1",
				Filename:    "receipt.jpg",
				ContentType: "image/jpeg",
				Size:        MaxProofSize + 1,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				return strings.NewReader("big")
			},
			wantErr: ErrProofTooLarge,
		},
		{
			name: "order not found before any upload",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				mOrders.On("FindByID", ctx, "order-1").Return(nil, sql.ErrNoRows)
				return strings.NewReader("jpeg bytes")
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name: "duplicate proof rejected",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				mOrders.On("FindByID", ctx, "order-1").
					Return(&model.Order{ID: "order-1"}, nil)
				mProofs.On("FindByOrderID", ctx, "order-1").
					Return(&model.PaymentProof{OrderID: "order-1"}, nil)
				return strings.NewReader("jpeg bytes")
			},
			wantErr: ErrProofExists,
		},
		{
			name: "storage error",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				r := strings.NewReader("jpeg bytes")
				mOrders.On("FindByID", ctx, "order-1").Return(&model.Order{ID: "order-1"}, nil)
				mProofs.On("FindByOrderID", ctx, "order-1").Return(nil, sql.ErrNoRows)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "repository error with successful rollback",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				r := strings.NewReader("jpeg bytes")
				mOrders.On("FindByID", ctx, "order-1").Return(&model.Order{ID: "order-1"}, nil)
				mProofs.On("FindByOrderID", ctx, "order-1").Return(nil, sql.ErrNoRows)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mProofs.On("CreateAndMarkSubmitted", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			in:   validInput(),
			setupMocks: func(mStore *storeMocks.MockStorage, mOrders *repoMocks.MockOrderRepository, mProofs *repoMocks.MockPaymentProofRepository) io.Reader {
				r := strings.NewReader("jpeg bytes")
				mOrders.On("FindByID", ctx, "order-1").Return(&model.Order{ID: "order-1"}, nil)
				mProofs.On("FindByOrderID", ctx, "order-1").Return(nil, sql.ErrNoRows)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mProofs.On("CreateAndMarkSubmitted", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mOrders := new(repoMocks.MockOrderRepository)
			mProofs := new(repoMocks.MockPaymentProofRepository)
			svc := NewPaymentService(mStore, mOrders, mProofs)

			r := tt.setupMocks(mStore, mOrders, mProofs)

			proof, err := svc.UploadProof(ctx, r, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, proof)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, proof)
			}

			mStore.AssertExpectations(t)
			mOrders.AssertExpectations(t)
			mProofs.AssertExpectations(t)
		})
	}
}

func TestPaymentService_ProofDownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mProofs := new(repoMocks.MockPaymentProofRepository)
		svc := NewPaymentService(mStore, nil, mProofs)

		mProofs.On("FindByOrderID", ctx, "order-1").
			Return(&model.PaymentProof{OrderID: "order-1", FilePath: "order-1/abc.jpg"}, nil)
		mStore.On("PresignGet", ctx, "order-1/abc.jpg", proofURLExpiry).
			Return("https://bucket/signed", nil)

		url, err := svc.ProofDownloadURL(ctx, "order-1")

		assert.NoError(t, err)
		assert.Equal(t, "https://bucket/signed", url)
		mStore.AssertExpectations(t)
		mProofs.AssertExpectations(t)
	})

	t.Run("no proof", func(t *testing.T) {
		mProofs := new(repoMocks.MockPaymentProofRepository)
		svc := NewPaymentService(nil, nil, mProofs)

		mProofs.On("FindByOrderID", ctx, "order-1").Return(nil, sql.ErrNoRows)

		url, err := svc.ProofDownloadURL(ctx, "order-1")

		assert.ErrorIs(t, err, ErrProofNotFound)
		assert.Empty(t, url)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewPaymentService(nil, nil, nil)

		url, err := svc.ProofDownloadURL(ctx, "")

		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Empty(t, url)
	})
}
