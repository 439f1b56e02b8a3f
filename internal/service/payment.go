package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/internal/model"
	"shopapi/internal/repository"
	"shopapi/internal/storage"
)

// MaxProofSize is the upload ceiling for payment proof files.
const MaxProofSize = 5 * 1024 * 1024

// proofURLExpiry bounds how long a presigned proof download link stays valid.
const proofURLExpiry = 15 * time.Minute

// allowedProofTypes maps accepted content types to the extension used
// when the original filename does not carry a usable one.
var allowedProofTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

var allowedProofExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".pdf": {},
}

// UploadProofInput carries the multipart fields of a proof submission.
// AmountSAR and Note are optional; the customer may leave them out.
type UploadProofInput struct {
	OrderID     string
	Filename    string
	ContentType string
	Size        int64
	AmountSAR   *decimal.Decimal
	Note        *string
}

// PaymentService defines the use cases around bank-transfer proofs.
type PaymentService interface {
	// UploadProof stores the file in the proof bucket, then records the
	// proof and moves the order to proof_submitted in one transaction.
	// It never approves anything. If the DB write fails after the object
	// was stored, the object is deleted again.
	UploadProof(ctx context.Context, r io.Reader, in UploadProofInput) (*model.PaymentProof, error)

	// ProofDownloadURL returns a time-limited URL for the reviewer to
	// download an order's proof file.
	ProofDownloadURL(ctx context.Context, orderID string) (string, error)
}

type paymentService struct {
	store  storage.Storage
	orders repository.OrderRepository
	proofs repository.PaymentProofRepository
}

// NewPaymentService constructs a new PaymentService.
func NewPaymentService(store storage.Storage, orders repository.OrderRepository, proofs repository.PaymentProofRepository) PaymentService {
	return &paymentService{store: store, orders: orders, proofs: proofs}
}

// proofObjectKey builds a bucket key that never contains the customer's
// original filename: <order-id>/<uuid-hex><ext>.
func proofObjectKey(orderID, originalFilename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if _, ok := allowedProofExts[ext]; !ok {
		ext = allowedProofTypes[contentType]
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	return orderID + "/" + name
}

func (s *paymentService) UploadProof(ctx context.Context, r io.Reader, in UploadProofInput) (*model.PaymentProof, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if in.OrderID == "" {
		return nil, ErrIDRequired
	}
	if _, ok := allowedProofTypes[in.ContentType]; !ok {
		return nil, ErrUnsupportedProofType
	}
	if in.Size > MaxProofSize {
		return nil, ErrProofTooLarge
	}

	// Validate the order before touching the bucket so a rejected
	// request never leaves an orphan object behind.
	if _, err := s.orders.FindByID(ctx, in.OrderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if _, err := s.proofs.FindByOrderID(ctx, in.OrderID); err == nil {
		return nil, ErrProofExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	key := proofObjectKey(in.OrderID, in.Filename, in.ContentType)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	proof := &model.PaymentProof{
		ID:        uuid.New().String(),
		OrderID:   in.OrderID,
		FilePath:  objInfo.Key,
		AmountSAR: in.AmountSAR,
		Note:      in.Note,
		Status:    model.ProofStatusSubmitted,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.proofs.CreateAndMarkSubmitted(ctx, proof)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return stored, nil
}

func (s *paymentService) ProofDownloadURL(ctx context.Context, orderID string) (string, error) {
	if orderID == "" {
		return "", ErrIDRequired
	}
	proof, err := s.proofs.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProofNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, proof.FilePath, proofURLExpiry)
}
