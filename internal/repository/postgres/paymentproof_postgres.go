package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// PaymentProofPostgres is a PostgreSQL implementation of repository.PaymentProofRepository.
type PaymentProofPostgres struct {
	db *sql.DB
}

// NewPaymentProofPostgres creates a new PaymentProofPostgres repository.
func NewPaymentProofPostgres(db *sql.DB) *PaymentProofPostgres {
	return &PaymentProofPostgres{db: db}
}

var _ repository.PaymentProofRepository = (*PaymentProofPostgres)(nil)

func scanProof(row interface{ Scan(dest ...any) error }) (*model.PaymentProof, error) {
	var (
		p      model.PaymentProof
		amount decimal.NullDecimal
		note   sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.FilePath,
		&amount,
		&note,
		&p.Status,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if amount.Valid {
		p.AmountSAR = &amount.Decimal
	}
	if note.Valid {
		p.Note = &note.String
	}
	return &p, nil
}

// CreateAndMarkSubmitted inserts the proof row and flips its order to
// proof_submitted in one transaction. Either both land or neither does.
func (r *PaymentProofPostgres) CreateAndMarkSubmitted(ctx context.Context, p *model.PaymentProof) (*model.PaymentProof, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qInsert = `
		INSERT INTO payment_proofs (id, order_id, file_path, amount_sar, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, order_id, file_path, amount_sar, note, status, created_at
	`
	stored, err := scanProof(tx.QueryRowContext(ctx, qInsert,
		p.ID,
		p.OrderID,
		p.FilePath,
		p.AmountSAR,
		p.Note,
		p.Status,
		p.CreatedAt,
	))
	if err != nil {
		return nil, err
	}

	const qOrder = `UPDATE orders SET status = $2 WHERE id = $1`
	res, err := tx.ExecContext(ctx, qOrder, p.OrderID, model.OrderStatusProofSubmitted)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByOrderID fetches the proof attached to an order.
func (r *PaymentProofPostgres) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentProof, error) {
	const q = `
		SELECT id, order_id, file_path, amount_sar, note, status, created_at
		FROM payment_proofs
		WHERE order_id = $1
	`
	return scanProof(r.db.QueryRowContext(ctx, q, orderID))
}

// UpdateReview writes the review outcome to the proof and the order in
// one transaction. COALESCE keeps the existing note when the reviewer
// did not provide one.
func (r *PaymentProofPostgres) UpdateReview(ctx context.Context, orderID, proofStatus string, note *string, orderStatus string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qProof = `
		UPDATE payment_proofs
		SET status = $2, note = COALESCE($3, note)
		WHERE order_id = $1
	`
	res, err := tx.ExecContext(ctx, qProof, orderID, proofStatus, note)
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

	const qOrder = `UPDATE orders SET status = $2 WHERE id = $1`
	res, err = tx.ExecContext(ctx, qOrder, orderID, orderStatus)
	if err != nil {
		return err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
