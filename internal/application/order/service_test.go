package order

import (
	"context"
	"fmt"
	"testing"

	domain "github.com/minimart/catalog-api/internal/domain/order"
	"github.com/minimart/catalog-api/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("order-%03d", g.n)
}

func newTestService() (*Service, *memory.OrderRepository) {
	repo := memory.NewOrderRepository()
	return NewService(repo, &seqIDGenerator{}, nil), repo
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		UserID: "user-1",
		Items:  []LineItemInput{{ProductID: "A1", Qty: 2}},
		Total:  42.0,
	}
}

func TestCreateOrder_PersistsWithCreatedStatus(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusCreated, created.Status)
	assert.Empty(t, created.PaymentID)
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{"missing user", CreateOrderInput{Items: []LineItemInput{{ProductID: "A1", Qty: 1}}, Total: 10}},
		{"no items", CreateOrderInput{UserID: "u", Total: 10}},
		{"zero qty", CreateOrderInput{UserID: "u", Items: []LineItemInput{{ProductID: "A1"}}, Total: 10}},
		{"missing product id", CreateOrderInput{UserID: "u", Items: []LineItemInput{{Qty: 1}}, Total: 10}},
		{"non-positive total", CreateOrderInput{UserID: "u", Items: []LineItemInput{{ProductID: "A1", Qty: 1}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGet_UnknownIDReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByUser_AppliesLimitDefaultsAndPages(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 25; i++ {
		_, err := svc.CreateOrder(context.Background(), validInput())
		require.NoError(t, err)
	}

	page, err := svc.ListByUser(context.Background(), "user-1", 0, "")
	require.NoError(t, err)
	assert.Len(t, page.Orders, defaultListLimit)
	require.NotEmpty(t, page.NextCursor)

	rest, err := svc.ListByUser(context.Background(), "user-1", 0, page.NextCursor)
	require.NoError(t, err)
	assert.Len(t, rest.Orders, 5)
	assert.Empty(t, rest.NextCursor)
}

func TestListByUser_RequiresUserID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListByUser(context.Background(), "", 10, "")
	assert.ErrorIs(t, err, ErrValidation)
}
