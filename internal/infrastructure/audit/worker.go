// Package audit subscribes to order lifecycle events and records them in
// the log stream. It is the only consumer of the in-process bus; anything
// heavier (projections, notifications) would hang off the same subscriptions.
package audit

import (
	"context"

	domorder "github.com/minimart/catalog-api/internal/domain/order"
	domoutbox "github.com/minimart/catalog-api/internal/domain/outbox"

	"go.uber.org/zap"
)

type Worker struct {
	sub domoutbox.Subscriber
	log *zap.Logger
}

func New(sub domoutbox.Subscriber, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		sub: sub,
		log: logger.With(zap.String("component", "audit_worker")),
	}
}

func (w *Worker) Start() {
	w.sub.Subscribe(domorder.OrderCreatedEvent{}.EventName(), w.onOrderCreated)
	w.sub.Subscribe(domorder.OrderConfirmedEvent{}.EventName(), w.onOrderConfirmed)
	w.sub.Subscribe(domorder.OrderStockDecrementFailedEvent{}.EventName(), w.onStockDecrementFailed)
}

func (w *Worker) onOrderCreated(ctx context.Context, e domoutbox.Event) error {
	_ = ctx
	evt, ok := e.(domorder.OrderCreatedEvent)
	if !ok {
		return nil
	}
	w.log.Info("audit_order_created",
		zap.String("order_id", evt.OrderID),
		zap.String("user_id", evt.UserID),
		zap.Int("items", evt.ItemCount),
		zap.Float64("total", evt.Total),
	)
	return nil
}

func (w *Worker) onOrderConfirmed(ctx context.Context, e domoutbox.Event) error {
	_ = ctx
	evt, ok := e.(domorder.OrderConfirmedEvent)
	if !ok {
		return nil
	}
	w.log.Info("audit_order_confirmed",
		zap.String("order_id", evt.OrderID),
		zap.String("payment_id", evt.PaymentID),
	)
	return nil
}

func (w *Worker) onStockDecrementFailed(ctx context.Context, e domoutbox.Event) error {
	_ = ctx
	evt, ok := e.(domorder.OrderStockDecrementFailedEvent)
	if !ok {
		return nil
	}
	w.log.Warn("audit_stock_decrement_failed",
		zap.String("order_id", evt.OrderID),
		zap.String("product_id", evt.ProductID),
		zap.String("reason", evt.Reason),
	)
	return nil
}
