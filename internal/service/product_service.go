package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns products ordered by name.
func (s *productService) List(ctx context.Context, includeUnavailable bool) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, includeUnavailable)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Bool("include_unavailable", includeUnavailable).
		Msg("retrieved products")

	return products, nil
}

// GetByName retrieves a single product by name.
func (s *productService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to get product by name")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("name", name).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	p := productFromRequest(uuid.New(), req)
	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Update replaces a product's fields. The creation time is read back from
// the repository.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	p := productFromRequest(id, req)
	p.CreatedAt = time.Time{}
	if err := s.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")
	return p, nil
}

// UpsertByName creates or replaces the product with the same name.
func (s *productService) UpsertByName(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	p := productFromRequest(uuid.New(), req)
	if err := s.productRepo.UpsertByName(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}
	return p, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

func productFromRequest(id uuid.UUID, req *model.ProductRequest) *model.Product {
	now := time.Now().UTC()
	return &model.Product{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PriceDisplay: strings.TrimSpace(req.Price),
		Image:        req.Image,
		Available:    req.IsAvailable(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
