package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopapi/internal/model"
	"shopapi/internal/service"
)

// reviewRequest is the admin's decision on an order with a submitted proof.
type reviewRequest struct {
	Decision string  `json:"decision"`
	Note     *string `json:"note"`
}

type reviewResponse struct {
	OK          bool   `json:"ok"`
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
	ProofStatus string `json:"proof_status"`
}

// ReviewOrder approves or rejects an order (admin only).
func ReviewOrder(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("id")
		if _, err := uuid.Parse(orderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Review(c.UserContext(), orderID, req.Decision, req.Note)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidDecision):
				return writeError(c, fiber.StatusBadRequest, "INVALID_DECISION", "decision must be approve or reject")
			case errors.Is(err, service.ErrNoProofToReview):
				return writeError(c, fiber.StatusBadRequest, "NO_PAYMENT_PROOF", "no payment proof to review")
			case errors.Is(err, service.ErrOrderNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(reviewResponse{
			OK:          true,
			OrderID:     res.OrderID,
			OrderStatus: res.OrderStatus,
			ProofStatus: res.ProofStatus,
		})
	}
}

// ListAdminOrders returns orders by status for the review queue (admin only).
func ListAdminOrders(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status", model.OrderStatusProofSubmitted)
		limitStr := c.Query("limit", "100")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListOrders(c.UserContext(), status, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
