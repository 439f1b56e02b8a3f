package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/internal/service"
)

// proofUploadedResponse confirms a submission and tells the customer the
// order is now waiting for manual review.
type proofUploadedResponse struct {
	OK        bool             `json:"ok"`
	OrderID   string           `json:"order_id"`
	Status    string           `json:"status"`
	FilePath  string           `json:"file_path"`
	AmountSAR *decimal.Decimal `json:"amount_sar"`
}

// UploadPaymentProof accepts a multipart payment proof (field "file",
// optional "amount_sar" and "note") for a pending order.
func UploadPaymentProof(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("id")
		if _, err := uuid.Parse(orderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		var amount *decimal.Decimal
		if v := c.FormValue("amount_sar"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_AMOUNT", "amount_sar must be a number")
			}
			amount = &d
		}
		var note *string
		if v := c.FormValue("note"); v != "" {
			note = &v
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		proof, err := svc.UploadProof(c.UserContext(), f, service.UploadProofInput{
			OrderID:     orderID,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			AmountSAR:   amount,
			Note:        note,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedProofType):
				return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type (jpg/png/pdf only)")
			case errors.Is(err, service.ErrProofTooLarge):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file too large (max 5MB)")
			case errors.Is(err, service.ErrProofExists):
				return writeError(c, fiber.StatusBadRequest, "PROOF_EXISTS", "payment proof already submitted")
			case errors.Is(err, service.ErrOrderNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.Status(fiber.StatusCreated).JSON(proofUploadedResponse{
			OK:        true,
			OrderID:   orderID,
			Status:    "proof_submitted",
			FilePath:  proof.FilePath,
			AmountSAR: proof.AmountSAR,
		})
	}
}

// GetPaymentProofURL returns a presigned download link for an order's
// proof file (admin only).
func GetPaymentProofURL(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("id")
		if _, err := uuid.Parse(orderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.ProofDownloadURL(c.UserContext(), orderID)
		if err != nil {
			if errors.Is(err, service.ErrProofNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "payment proof not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
