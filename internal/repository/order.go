package repository

import (
	"context"

	"shopapi/internal/model"
)

// OrderRepository defines data access for orders and their line items.
type OrderRepository interface {
	// CreateWithItems inserts the order and all its items in a single
	// transaction. Either everything is persisted or nothing is.
	CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error

	// FindByID returns an order by its ID.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	// ListItems returns all line items of an order.
	ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error)

	// ListByStatus returns orders with the given status, newest first,
	// paginated, along with a total count for that status.
	ListByStatus(ctx context.Context, status string, pq PageQuery) (*PageResult[model.Order], error)
}
