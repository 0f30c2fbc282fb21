package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/minimart/catalog-api/internal/domain/order"
	domoutbox "github.com/minimart/catalog-api/internal/domain/outbox"
	domproduct "github.com/minimart/catalog-api/internal/domain/product"
	"github.com/minimart/catalog-api/internal/pkg/logging"
	"github.com/minimart/catalog-api/internal/pkg/metrics"
	"github.com/minimart/catalog-api/internal/pkg/storeerr"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	useCaseOrderConfirm = "order.confirm"
	spanPrefix          = "UC."
	publishTimeout      = 300 * time.Millisecond
)

// ConfirmOutcome tags the business result of a confirmation attempt.
// System faults (store outages, throttling) are reported as errors instead,
// so callers cannot conflate an expected outcome with a fault.
type ConfirmOutcome string

const (
	// OutcomeConfirmed: the order transitioned to CONFIRMED and, when line
	// items were present, every stock decrement applied.
	OutcomeConfirmed ConfirmOutcome = "confirmed"

	// OutcomeAlreadyResolved: the confirm condition did not match — the
	// order is absent or was confirmed earlier. Nothing was mutated.
	OutcomeAlreadyResolved ConfirmOutcome = "already_resolved"

	// OutcomeDecrementFailed: the order is CONFIRMED but the stock
	// adjustment stopped partway. The applied prefix has been compensated
	// (re-incremented) on a best-effort basis.
	OutcomeDecrementFailed ConfirmOutcome = "decrement_failed"
)

// ConfirmResult is the tagged outcome of ConfirmOrderUseCase.Execute.
type ConfirmResult struct {
	Outcome ConfirmOutcome

	// Order is the post-update record. Nil for OutcomeAlreadyResolved.
	Order *domain.Order

	// FailedItem is the line item whose decrement failed. Set only for
	// OutcomeDecrementFailed.
	FailedItem *domain.LineItem

	// Compensated reports whether the re-increment of the applied prefix
	// fully succeeded. Meaningful only for OutcomeDecrementFailed.
	Compensated bool

	// Cause is the underlying decrement failure. Set only for
	// OutcomeDecrementFailed.
	Cause error
}

// ConfirmOrderUseCase orchestrates the CREATED→CONFIRMED transition and its
// stock side effect. The conditional confirm is the authoritative gate:
// decrements are attempted only after it commits, and a decrement failure
// never rolls the confirmation back.
type ConfirmOrderUseCase struct {
	orders    domain.Repository
	products  domproduct.Repository
	publisher domoutbox.Publisher
}

func NewConfirmOrderUseCase(
	orders domain.Repository,
	products domproduct.Repository,
	publisher domoutbox.Publisher,
) *ConfirmOrderUseCase {
	return &ConfirmOrderUseCase{
		orders:    orders,
		products:  products,
		publisher: publisher,
	}
}

// Execute confirms the order identified by orderID, stamping paymentID on it.
// The payment reference is produced upstream (at the transport boundary);
// the use case only requires it to be present.
func (uc *ConfirmOrderUseCase) Execute(ctx context.Context, orderID, paymentID string) (_ *ConfirmResult, err error) {
	logger := logging.FromContext(ctx).With(zap.String("use_case", useCaseOrderConfirm))

	ctx, span := otel.Tracer(useCaseOrderConfirm).Start(ctx, spanPrefix+"ConfirmOrder")
	span.SetAttributes(
		attribute.String("use_case", useCaseOrderConfirm),
		attribute.String("order.id", orderID),
	)

	start := time.Now()
	outcomeLabel := "success"

	defer func() {
		if err != nil {
			outcomeLabel = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		metrics.UsecaseRequests.WithLabelValues(useCaseOrderConfirm, outcomeLabel).Inc()
		metrics.UsecaseDuration.WithLabelValues(useCaseOrderConfirm).Observe(time.Since(start).Seconds())
	}()

	if orderID == "" {
		return nil, newValidation("order id is required")
	}
	if paymentID == "" {
		return nil, newValidation("payment id is required")
	}

	confirmed, err := uc.orders.Confirm(ctx, orderID, paymentID)
	if errors.Is(err, domain.ErrNoMatch) {
		// Absent or already confirmed. A frequent, client-triggerable
		// outcome: double submission, stale client state.
		outcomeLabel = "no_match"
		err = nil
		logger.Info("order_confirm_no_match", zap.String("order_id", orderID))
		return &ConfirmResult{Outcome: OutcomeAlreadyResolved}, nil
	}
	if err != nil {
		logger.Error("order_confirm_failed",
			zap.String("order_id", orderID),
			zap.Bool("retryable", storeerr.Retryable(err)),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.OrdersConfirmed.Inc()
	span.AddEvent("order.confirmed")
	uc.publish(ctx, logger, domain.NewOrderConfirmedEvent(confirmed))

	if len(confirmed.Items) > 0 {
		if result := uc.decrementStock(ctx, logger, confirmed); result != nil {
			outcomeLabel = "decrement_failed"
			return result, nil
		}
	}

	logger.Info("order_confirmed",
		zap.String("order_id", confirmed.ID),
		zap.String("payment_id", confirmed.PaymentID),
		zap.Int("items", len(confirmed.Items)),
	)
	return &ConfirmResult{Outcome: OutcomeConfirmed, Order: confirmed}, nil
}

// decrementStock applies the confirmed order's line items one at a time, in
// order. On failure it re-increments the applied prefix so stock is not
// silently leaked, then reports the failure as an explicit outcome. Returns
// nil when every item applied.
func (uc *ConfirmOrderUseCase) decrementStock(ctx context.Context, logger *zap.Logger, confirmed *domain.Order) *ConfirmResult {
	adjustments := make([]domproduct.StockAdjustment, len(confirmed.Items))
	for i, it := range confirmed.Items {
		adjustments[i] = domproduct.StockAdjustment{ProductID: it.ProductID, Qty: it.Qty}
	}

	applied, err := uc.products.DecrementStockForItems(ctx, adjustments)
	if err == nil {
		return nil
	}

	failed := confirmed.Items[applied]

	reason := "store_error"
	if errors.Is(err, domproduct.ErrInsufficientStock) {
		reason = "insufficient_stock"
	}
	metrics.StockDecrementFailures.WithLabelValues(reason).Inc()

	compensated := true
	if applied > 0 {
		if compErr := uc.products.IncrementStockForItems(ctx, adjustments[:applied]); compErr != nil {
			compensated = false
			logger.Error("stock_compensation_failed",
				zap.String("order_id", confirmed.ID),
				zap.Int("applied", applied),
				zap.Error(compErr),
			)
		}
	}

	logger.Error("stock_decrement_failed",
		zap.String("order_id", confirmed.ID),
		zap.String("product_id", failed.ProductID),
		zap.Int("applied", applied),
		zap.Bool("compensated", compensated),
		zap.Error(err),
	)
	uc.publish(ctx, logger, domain.NewOrderStockDecrementFailedEvent(confirmed.ID, failed.ProductID, reason))

	return &ConfirmResult{
		Outcome:     OutcomeDecrementFailed,
		Order:       confirmed,
		FailedItem:  &failed,
		Compensated: compensated,
		Cause:       err,
	}
}

func (uc *ConfirmOrderUseCase) publish(ctx context.Context, logger *zap.Logger, e domoutbox.Event) {
	if uc.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := uc.publisher.Publish(pubCtx, e); err != nil {
		metrics.EventPublishFailures.WithLabelValues(e.EventName()).Inc()
		logger.Warn("event_publish_failed",
			zap.String("event", e.EventName()),
			zap.Error(err),
		)
	}
}

func newValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
