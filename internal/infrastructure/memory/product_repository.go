package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/minimart/catalog-api/internal/domain/product"
)

// ProductRepository mirrors the document-store adapter's conditional
// semantics in memory, including the stock >= qty decrement predicate.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; exists {
		return domain.ErrConflict
	}

	r.products[p.ID] = p.Clone()
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) List(ctx context.Context, limit int, cursor string) (*domain.Page, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := 0
	if cursor != "" {
		for i, p := range all {
			if p.ID > cursor {
				start = i
				break
			}
			start = i + 1
		}
	}

	page := &domain.Page{}
	for i := start; i < len(all) && len(page.Products) < limit; i++ {
		page.Products = append(page.Products, all[i].Clone())
	}
	if n := start + len(page.Products); n < len(all) && len(page.Products) > 0 {
		page.NextCursor = page.Products[len(page.Products)-1].ID
	}
	return page, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Product, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return p.Clone(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, productID string, qty int) error {
	_ = ctx
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

// DecrementStockForItems walks the items strictly in order, one decrement at
// a time, stopping at the first failure. There is no cross-item atomicity;
// the returned count tells the caller which prefix was applied.
func (r *ProductRepository) DecrementStockForItems(ctx context.Context, items []domain.StockAdjustment) (int, error) {
	for i, it := range items {
		if err := r.DecrementStock(ctx, it.ProductID, it.Qty); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (r *ProductRepository) IncrementStockForItems(ctx context.Context, items []domain.StockAdjustment) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range items {
		p, ok := r.products[it.ProductID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock += it.Qty
	}
	return nil
}
