package order

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/minimart/catalog-api/internal/domain/order"
	domoutbox "github.com/minimart/catalog-api/internal/domain/outbox"
	"github.com/minimart/catalog-api/internal/pkg/logging"
	"github.com/minimart/catalog-api/internal/pkg/metrics"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ErrValidation tags input errors the transport maps to a 400 response.
var ErrValidation = errors.New("validation")

// Service covers the plain order operations: create, get, list by user.
// The confirmation workflow lives in ConfirmOrderUseCase.
type Service struct {
	repo        domain.Repository
	idGenerator IDGenerator
	publisher   domoutbox.Publisher
}

func NewService(repo domain.Repository, idGen IDGenerator, publisher domoutbox.Publisher) *Service {
	return &Service{
		repo:        repo,
		idGenerator: idGen,
		publisher:   publisher,
	}
}

type LineItemInput struct {
	ProductID string
	Qty       int
}

type CreateOrderInput struct {
	UserID string
	Items  []LineItemInput
	Total  float64
}

func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	if input.UserID == "" {
		return nil, newValidation("user id is required")
	}
	items := make([]domain.LineItem, len(input.Items))
	for i, it := range input.Items {
		if it.ProductID == "" {
			return nil, newValidation("item product id is required")
		}
		items[i] = domain.LineItem{ProductID: it.ProductID, Qty: it.Qty}
	}

	entity, err := domain.New(s.idGenerator.NewID(), input.UserID, items, input.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		logger.Error("order_create_failed", zap.String("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: create: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewOrderCreatedEvent(entity)); err != nil {
			metrics.EventPublishFailures.WithLabelValues("order.created").Inc()
			logger.Warn("event_publish_failed", zap.String("event", "order.created"), zap.Error(err))
		}
	}

	logger.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("user_id", entity.UserID),
		zap.Int("items", len(entity.Items)),
	)
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, newValidation("order id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit int, cursor string) (*domain.Page, error) {
	if userID == "" {
		return nil, newValidation("user id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListByUser(ctx, userID, limit, cursor)
}
