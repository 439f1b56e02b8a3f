package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProofNotFound   = errors.New("payment proof not found")

	ErrNameRequired = errors.New("product name is required")
	ErrPriceInvalid = errors.New("product price must be greater than zero")

	ErrEmptyItems = errors.New("order has no items")
	ErrQtyInvalid = errors.New("item qty must be at least 1")

	ErrReaderNil            = errors.New("reader is nil")
	ErrUnsupportedProofType = errors.New("unsupported file type (jpg/png/pdf only)")
	ErrProofTooLarge        = errors.New("file too large (max 5MB)")
	ErrProofExists          = errors.New("payment proof already submitted")

	ErrInvalidDecision = errors.New("decision must be approve or reject")
	ErrNoProofToReview = errors.New("no payment proof to review")
)

// UnknownProductsError reports order items referencing product ids that
// do not exist or are no longer active.
type UnknownProductsError struct {
	IDs []string
}

func (e *UnknownProductsError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.IDs, ", "))
}
