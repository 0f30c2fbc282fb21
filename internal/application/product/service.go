package product

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/minimart/catalog-api/internal/domain/product"
	"github.com/minimart/catalog-api/internal/pkg/logging"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var ErrValidation = errors.New("validation")

// Service covers the product catalog CRUD. Stock decrements are driven by
// the order confirmation workflow, not by this service.
type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

type CreateProductInput struct {
	ProductID string
	Name      string
	Price     float64
	Stock     int
}

func (s *Service) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "product_service"))

	if input.ProductID == "" {
		return nil, newValidation("product id is required")
	}
	entity, err := domain.New(input.ProductID, input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		logger.Error("product_create_failed", zap.String("product_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("product: create: %w", err)
	}

	logger.Info("product_created", zap.String("product_id", entity.ID))
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, newValidation("product id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int, cursor string) (*domain.Page, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.List(ctx, limit, cursor)
}

func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Product, error) {
	if id == "" {
		return nil, newValidation("product id is required")
	}
	if patch.Empty() {
		return nil, newValidation("at least one field must be set")
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("product_updated", zap.String("product_id", id))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return newValidation("product id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("product_deleted", zap.String("product_id", id))
	return nil
}

func newValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
