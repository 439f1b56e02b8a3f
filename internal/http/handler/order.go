package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/internal/service"
)

// orderCreatedResponse mirrors what the storefront needs to show the
// bank-transfer instructions after checkout.
type orderCreatedResponse struct {
	OrderID  string          `json:"order_id"`
	Status   string          `json:"status"`
	TotalSAR decimal.Decimal `json:"total_sar"`
}

// CreateOrder places a new order priced from the active catalog.
func CreateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateOrderInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		order, err := svc.Create(c.UserContext(), in)
		if err != nil {
			var unknown *service.UnknownProductsError
			switch {
			case errors.Is(err, service.ErrEmptyItems):
				return writeError(c, fiber.StatusBadRequest, "EMPTY_ITEMS", "order has no items")
			case errors.Is(err, service.ErrQtyInvalid):
				return writeError(c, fiber.StatusBadRequest, "INVALID_QTY", "item qty must be at least 1")
			case errors.As(err, &unknown):
				return writeError(c, fiber.StatusBadRequest, "PRODUCTS_NOT_FOUND", unknown.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.Status(fiber.StatusCreated).JSON(orderCreatedResponse{
			OrderID:  order.ID,
			Status:   order.Status,
			TotalSAR: order.TotalSAR,
		})
	}
}

// GetOrder returns an order with its items and payment proof (if any).
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(detail)
	}
}
