package product

import (
	"context"
	"testing"

	domain "github.com/minimart/catalog-api/internal/domain/product"
	"github.com/minimart/catalog-api/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *memory.ProductRepository) {
	repo := memory.NewProductRepository()
	return NewService(repo), repo
}

func TestCreate_DefaultsToActive(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateProductInput{
		ProductID: "p-1",
		Name:      "Mechanical Keyboard",
		Price:     120.5,
		Stock:     15,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, 15, created.Stock)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreate_DuplicateIDConflicts(t *testing.T) {
	svc, _ := newTestService()

	input := CreateProductInput{ProductID: "p-1", Name: "Mouse", Price: 35}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing id", CreateProductInput{Name: "x", Price: 1}},
		{"missing name", CreateProductInput{ProductID: "p", Price: 1}},
		{"non-positive price", CreateProductInput{ProductID: "p", Name: "x"}},
		{"negative stock", CreateProductInput{ProductID: "p", Name: "x", Price: 1, Stock: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdate_AppliesOnlyPatchedFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateProductInput{
		ProductID: "p-1", Name: "Mouse", Price: 35, Stock: 50,
	})
	require.NoError(t, err)

	newPrice := 29.9
	inactive := domain.StatusInactive
	updated, err := svc.Update(context.Background(), "p-1", domain.Patch{
		Price:  &newPrice,
		Status: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 29.9, updated.Price)
	assert.Equal(t, domain.StatusInactive, updated.Status)
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, 50, updated.Stock)
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "p-1", domain.Patch{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_UnknownProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	name := "renamed"
	_, err := svc.Update(context.Background(), "ghost", domain.Patch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesAndReportsMissing(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), CreateProductInput{ProductID: "p-1", Name: "Mouse", Price: 35})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "p-1"))

	_, err = repo.GetByID(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "p-1"), domain.ErrNotFound)
}

func TestList_Paginates(t *testing.T) {
	svc, _ := newTestService()

	for _, id := range []string{"p-1", "p-2", "p-3"} {
		_, err := svc.Create(context.Background(), CreateProductInput{ProductID: id, Name: "n", Price: 1})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.NotEmpty(t, page.NextCursor)

	rest, err := svc.List(context.Background(), 2, page.NextCursor)
	require.NoError(t, err)
	assert.Len(t, rest.Products, 1)
	assert.Empty(t, rest.NextCursor)
}
