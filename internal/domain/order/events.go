package order

import "time"

// OrderCreatedEvent is emitted after an order is persisted with status CREATED.
type OrderCreatedEvent struct {
	OrderID    string
	UserID     string
	Total      float64
	ItemCount  int
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Total:      o.Total,
		ItemCount:  len(o.Items),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderConfirmedEvent is emitted after the CREATED→CONFIRMED transition commits.
type OrderConfirmedEvent struct {
	OrderID    string
	UserID     string
	PaymentID  string
	OccurredAt time.Time
}

func (OrderConfirmedEvent) EventName() string { return "order.confirmed" }

func NewOrderConfirmedEvent(o *Order) OrderConfirmedEvent {
	return OrderConfirmedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		PaymentID:  o.PaymentID,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderStockDecrementFailedEvent is emitted when the post-confirmation stock
// adjustment could not be applied for every line item. The order itself stays
// CONFIRMED; the already-applied prefix has been compensated.
type OrderStockDecrementFailedEvent struct {
	OrderID    string
	ProductID  string
	Reason     string
	OccurredAt time.Time
}

func (OrderStockDecrementFailedEvent) EventName() string { return "order.stock_decrement_failed" }

func NewOrderStockDecrementFailedEvent(orderID, productID, reason string) OrderStockDecrementFailedEvent {
	return OrderStockDecrementFailedEvent{
		OrderID:    orderID,
		ProductID:  productID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
