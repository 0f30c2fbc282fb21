package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: already exists")

	// ErrNoMatch reports that a conditional confirm matched no CREATED
	// order: the order is absent or was already confirmed. Callers must
	// treat this as a normal outcome, not a system fault.
	ErrNoMatch = errors.New("order: confirm condition not met")

	ErrInvalidQuantity = errors.New("order: item quantity must be greater than zero")
	ErrInvalidTotal    = errors.New("order: total must be greater than zero")
	ErrNoItems         = errors.New("order: at least one line item is required")
)

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusConfirmed Status = "CONFIRMED"
)

// LineItem is one (product, quantity) pair within an order. Items are
// immutable once the order is created.
type LineItem struct {
	ProductID string
	Qty       int
}

type Order struct {
	ID        string
	UserID    string
	Items     []LineItem
	Total     float64
	Status    Status
	PaymentID string
	CreatedAt time.Time
}

func New(id, userID string, items []LineItem, total float64) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}

	now := time.Now().UTC()
	return &Order{
		ID:        id,
		UserID:    userID,
		Items:     append([]LineItem(nil), items...),
		Total:     total,
		Status:    StatusCreated,
		CreatedAt: now,
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}
