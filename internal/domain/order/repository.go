package order

import "context"

// Page is one slice of a user's order history. NextCursor is empty when
// there are no further pages.
type Page struct {
	Orders     []*Order
	NextCursor string
}

type Repository interface {
	// Create stores a new order, conditioned on the id not existing yet.
	// Returns ErrConflict when the id is already taken.
	Create(ctx context.Context, o *Order) error

	// GetByID returns ErrNotFound when no order has the given id.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUser pages through a user's orders. cursor is the opaque
	// value from a previous Page; empty means start from the beginning.
	ListByUser(ctx context.Context, userID string, limit int, cursor string) (*Page, error)

	// Confirm atomically transitions the order from CREATED to CONFIRMED
	// and records the payment reference, returning the post-update record.
	// The update applies only if the order exists and its status is
	// CREATED; otherwise ErrNoMatch is returned and nothing is mutated.
	// This conditional write is the sole concurrency-control point for
	// the confirmation workflow.
	Confirm(ctx context.Context, orderID, paymentID string) (*Order, error)
}
