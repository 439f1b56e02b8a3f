package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shopapi/internal/model"
)

func proofColumns() []string {
	return []string{"id", "order_id", "file_path", "amount_sar", "note", "status", "created_at"}
}

func testProof() *model.PaymentProof {
	amount := decimal.RequireFromString("150.00")
	return &model.PaymentProof{
		ID:        "proof-1",
		OrderID:   "order-1",
		FilePath:  "order-1/abc123.jpg",
		AmountSAR: &amount,
		Status:    model.ProofStatusSubmitted,
		CreatedAt: time.Now().UTC(),
	}
}

func TestPaymentProofPostgres_CreateAndMarkSubmitted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaymentProofPostgres(db)
	ctx := context.Background()

	t.Run("commits proof insert and order status together", func(t *testing.T) {
		p := testProof()

		rows := sqlmock.NewRows(proofColumns()).
			AddRow(p.ID, p.OrderID, p.FilePath, "150.00", nil, p.Status, p.CreatedAt)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payment_proofs").
			WithArgs(p.ID, p.OrderID, p.FilePath, p.AmountSAR, p.Note, p.Status, p.CreatedAt).
			WillReturnRows(rows)
		mock.ExpectExec("UPDATE orders SET status = ?").
			WithArgs(p.OrderID, model.OrderStatusProofSubmitted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := repo.CreateAndMarkSubmitted(ctx, p)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, p.FilePath, result.FilePath)
		assert.NotNil(t, result.AmountSAR)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order status failure rolls back the proof insert", func(t *testing.T) {
		p := testProof()

		rows := sqlmock.NewRows(proofColumns()).
			AddRow(p.ID, p.OrderID, p.FilePath, "150.00", nil, p.Status, p.CreatedAt)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payment_proofs").
			WillReturnRows(rows)
		mock.ExpectExec("UPDATE orders SET status = ?").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		result, err := repo.CreateAndMarkSubmitted(ctx, p)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing order rolls back and maps to ErrNoRows", func(t *testing.T) {
		p := testProof()

		rows := sqlmock.NewRows(proofColumns()).
			AddRow(p.ID, p.OrderID, p.FilePath, "150.00", nil, p.Status, p.CreatedAt)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payment_proofs").
			WillReturnRows(rows)
		mock.ExpectExec("UPDATE orders SET status = ?").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		result, err := repo.CreateAndMarkSubmitted(ctx, p)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentProofPostgres_FindByOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaymentProofPostgres(db)
	ctx := context.Background()

	t.Run("found with null amount", func(t *testing.T) {
		rows := sqlmock.NewRows(proofColumns()).
			AddRow("proof-1", "order-1", "order-1/abc.pdf", nil, nil, model.ProofStatusSubmitted, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM payment_proofs WHERE order_id = ?").
			WithArgs("order-1").
			WillReturnRows(rows)

		p, err := repo.FindByOrderID(ctx, "order-1")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Nil(t, p.AmountSAR)
		assert.Nil(t, p.Note)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment_proofs WHERE order_id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByOrderID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})
}

func TestPaymentProofPostgres_UpdateReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaymentProofPostgres(db)
	ctx := context.Background()

	t.Run("commits proof and order status together", func(t *testing.T) {
		note := "amount matches the order"

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_proofs").
			WithArgs("order-1", model.ProofStatusApproved, &note).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status = ?").
			WithArgs("order-1", model.OrderStatusApproved).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateReview(ctx, "order-1", model.ProofStatusApproved, &note, model.OrderStatusApproved)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil note keeps existing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_proofs").
			WithArgs("order-1", model.ProofStatusRejected, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status = ?").
			WithArgs("order-1", model.OrderStatusRejected).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateReview(ctx, "order-1", model.ProofStatusRejected, nil, model.OrderStatusRejected)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order status failure rolls back the proof status", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_proofs").
			WithArgs("order-1", model.ProofStatusApproved, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status = ?").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.UpdateReview(ctx, "order-1", model.ProofStatusApproved, nil, model.OrderStatusApproved)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no proof rolls back and maps to ErrNoRows", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_proofs").
			WithArgs("order-2", model.ProofStatusApproved, nil).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateReview(ctx, "order-2", model.ProofStatusApproved, nil, model.OrderStatusApproved)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
