package postgres

import (
	"context"
	"database/sql"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

// CreateWithItems inserts the order and its items in one transaction.
func (r *OrderPostgres) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qOrder = `
		INSERT INTO orders (id, status, total_sar, customer_name, customer_phone, address_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, qOrder,
		o.ID,
		o.Status,
		o.TotalSAR,
		o.CustomerName,
		o.CustomerPhone,
		o.AddressText,
		o.CreatedAt,
	); err != nil {
		return err
	}

	const qItem = `
		INSERT INTO order_items (id, order_id, product_id, qty, price_sar)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, qItem,
			it.ID,
			it.OrderID,
			it.ProductID,
			it.Qty,
			it.PriceSAR,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByID fetches a single order by its ID.
func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const q = `
		SELECT id, status, total_sar, customer_name, customer_phone, address_text, created_at
		FROM orders
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var o model.Order
	if err := row.Scan(
		&o.ID,
		&o.Status,
		&o.TotalSAR,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.AddressText,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListItems returns all line items of an order.
func (r *OrderPostgres) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	const q = `
		SELECT id, order_id, product_id, qty, price_sar
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.Qty,
			&it.PriceSAR,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByStatus returns orders with the given status using LIMIT/OFFSET
// pagination and a total count.
func (r *OrderPostgres) ListByStatus(ctx context.Context, status string, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `SELECT COUNT(*) FROM orders WHERE status = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, status).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, status, total_sar, customer_name, customer_phone, address_text, created_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, status, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID,
			&o.Status,
			&o.TotalSAR,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.AddressText,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{
		Items: items,
		Total: total,
	}, nil
}
