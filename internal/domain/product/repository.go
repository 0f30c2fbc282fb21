package product

import "context"

type Page struct {
	Products   []*Product
	NextCursor string
}

type Repository interface {
	// Create stores a new product, conditioned on the id not existing yet.
	// Returns ErrConflict when the id is already taken.
	Create(ctx context.Context, p *Product) error

	// GetByID returns ErrNotFound when no product has the given id.
	GetByID(ctx context.Context, id string) (*Product, error)

	// List scans the catalog with limit+cursor pagination.
	List(ctx context.Context, limit int, cursor string) (*Page, error)

	// Update applies a partial patch conditioned on existence and returns
	// the post-update record. Returns ErrNotFound when the product is absent.
	Update(ctx context.Context, id string, patch Patch) (*Product, error)

	// Delete removes the product, returning ErrNotFound when it is absent.
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically subtracts qty from the product's stock,
	// conditioned on the product existing with stock >= qty. A failed
	// condition surfaces as ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID string, qty int) error

	// DecrementStockForItems walks items strictly in order, one decrement
	// at a time, stopping at the first failure. It reports how many
	// adjustments were applied so the caller can compensate the prefix.
	DecrementStockForItems(ctx context.Context, items []StockAdjustment) (int, error)

	// IncrementStockForItems adds stock back, conditioned only on the
	// product existing. Used to compensate a partially applied decrement.
	IncrementStockForItems(ctx context.Context, items []StockAdjustment) error
}
