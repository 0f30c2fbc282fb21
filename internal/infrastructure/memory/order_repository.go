package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/minimart/catalog-api/internal/domain/order"
)

// OrderRepository is a mutex-guarded in-memory store with the same
// conditional-write semantics as the document-store adapter. It backs tests
// and local runs without a database.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return domain.ErrConflict
	}

	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit int, cursor string) (*domain.Page, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := 0
	if cursor != "" {
		for i, o := range matched {
			if o.ID > cursor {
				start = i
				break
			}
			start = i + 1
		}
	}

	page := &domain.Page{}
	for i := start; i < len(matched) && len(page.Orders) < limit; i++ {
		page.Orders = append(page.Orders, matched[i].Clone())
	}
	if n := start + len(page.Orders); n < len(matched) && len(page.Orders) > 0 {
		page.NextCursor = page.Orders[len(page.Orders)-1].ID
	}
	return page, nil
}

// Confirm is the compare-and-swap: the status flips to CONFIRMED only while
// the whole check-and-set holds the write lock, so concurrent confirms for
// the same order serialize and exactly one observes CREATED.
func (r *OrderRepository) Confirm(ctx context.Context, orderID, paymentID string) (*domain.Order, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok || o.Status != domain.StatusCreated {
		return nil, domain.ErrNoMatch
	}

	o.Status = domain.StatusConfirmed
	o.PaymentID = paymentID
	return o.Clone(), nil
}
