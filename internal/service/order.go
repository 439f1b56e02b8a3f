package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CreateOrderInput carries the customer-supplied fields of a new order.
// Prices are never part of the input; they come from the catalog.
type CreateOrderInput struct {
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone"`
	AddressText   string           `json:"address_text"`
	Items         []OrderItemInput `json:"items"`
}

// OrderDetail aggregates an order with its lines and, when present, the
// uploaded payment proof.
type OrderDetail struct {
	Order        model.Order         `json:"order"`
	Items        []model.OrderItem   `json:"items"`
	PaymentProof *model.PaymentProof `json:"payment_proof"`
}

// OrderService defines the use cases for placing and reading orders.
type OrderService interface {
	// Create validates the items against the active catalog, prices the
	// order server-side, and persists order plus items atomically. The
	// new order starts in pending_payment.
	Create(ctx context.Context, in CreateOrderInput) (*model.Order, error)

	// Get returns the order, its items, and its payment proof (nil when
	// none was uploaded yet).
	Get(ctx context.Context, id string) (*OrderDetail, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	proofs   repository.PaymentProofRepository
}

// NewOrderService constructs a new OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, proofs repository.PaymentProofRepository) OrderService {
	return &orderService{orders: orders, products: products, proofs: proofs}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Qty < 1 {
			return nil, ErrQtyInvalid
		}
	}

	// Distinct trimmed product ids for the price lookup; duplicates in
	// the request stay separate order lines.
	seen := make(map[string]struct{}, len(in.Items))
	distinct := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		pid := strings.TrimSpace(it.ProductID)
		if _, ok := seen[pid]; !ok {
			seen[pid] = struct{}{}
			distinct = append(distinct, pid)
		}
	}

	prices, err := s.products.PricesByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(prices) != len(distinct) {
		missing := make([]string, 0)
		for _, pid := range distinct {
			if _, ok := prices[pid]; !ok {
				missing = append(missing, pid)
			}
		}
		return nil, &UnknownProductsError{IDs: missing}
	}

	order := &model.Order{
		ID:            uuid.New().String(),
		Status:        model.OrderStatusPendingPayment,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		AddressText:   in.AddressText,
		CreatedAt:     time.Now().UTC(),
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		pid := strings.TrimSpace(it.ProductID)
		price := prices[pid]
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Qty))))
		items = append(items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: pid,
			Qty:       it.Qty,
			PriceSAR:  price,
		})
	}
	order.TotalSAR = total

	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*OrderDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	items, err := s.orders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	proof, err := s.proofs.FindByOrderID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return &OrderDetail{
		Order:        *order,
		Items:        items,
		PaymentProof: proof,
	}, nil
}
