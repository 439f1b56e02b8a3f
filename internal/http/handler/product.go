package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopapi/internal/service"
)

// ListProducts returns all active catalog products, newest first.
func ListProducts(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(products)
	}
}

// GetProduct returns a single active product by ID.
func GetProduct(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "product not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(p)
	}
}

// CreateProduct adds a product to the catalog (admin only).
func CreateProduct(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateProductInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			case errors.Is(err, service.ErrPriceInvalid):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PRICE", "price_sar must be greater than zero")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// DeactivateProduct removes a product from the public catalog (admin only).
func DeactivateProduct(svc service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Deactivate(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "product not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
