package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("product: not found")
	ErrConflict = errors.New("product: already exists")

	// ErrInsufficientStock reports a failed conditional decrement: the
	// product is missing or its stock is below the requested quantity.
	ErrInsufficientStock = errors.New("product: missing or insufficient stock")

	ErrInvalidName     = errors.New("product: name is required")
	ErrInvalidPrice    = errors.New("product: price must be greater than zero")
	ErrInvalidStock    = errors.New("product: stock must be zero or greater")
	ErrInvalidQuantity = errors.New("product: quantity must be greater than zero")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Product struct {
	ID        string
	Name      string
	Price     float64
	Stock     int
	Status    Status
	CreatedAt time.Time
}

func New(id, name string, price float64, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Name   *string
	Price  *float64
	Stock  *int
	Status *Status
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Stock == nil && p.Status == nil
}

func (p Patch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return ErrInvalidName
	}
	if p.Price != nil && *p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Status != nil && *p.Status != StatusActive && *p.Status != StatusInactive {
		return errors.New("product: status must be ACTIVE or INACTIVE")
	}
	return nil
}

// StockAdjustment is one unit of work for the stock decrement loop.
type StockAdjustment struct {
	ProductID string
	Qty       int
}
