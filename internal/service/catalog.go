package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// CreateProductInput carries the fields an administrator supplies when
// adding a product to the catalog.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	PriceSAR    decimal.Decimal `json:"price_sar"`
	ImageURL    *string         `json:"image_url"`
}

// CatalogService defines the use cases for browsing and managing products.
type CatalogService interface {
	// List returns all active products, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// Get returns a single active product by its ID.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Create adds a new active product to the catalog.
	Create(ctx context.Context, in CreateProductInput) (*model.Product, error)

	// Deactivate removes a product from the public catalog without
	// deleting it, so order history keeps a valid reference.
	Deactivate(ctx context.Context, id string) error
}

type catalogService struct {
	products repository.ProductRepository
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *catalogService) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if !in.PriceSAR.IsPositive() {
		return nil, ErrPriceInvalid
	}

	p := &model.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		PriceSAR:    in.PriceSAR,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	return s.products.Create(ctx, p)
}

func (s *catalogService) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.products.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
