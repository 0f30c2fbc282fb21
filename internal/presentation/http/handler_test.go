package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appOrder "github.com/minimart/catalog-api/internal/application/order"
	appProduct "github.com/minimart/catalog-api/internal/application/product"
	"github.com/minimart/catalog-api/internal/infrastructure/id"
	"github.com/minimart/catalog-api/internal/infrastructure/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() (*gin.Engine, *memory.OrderRepository, *memory.ProductRepository) {
	gin.SetMode(gin.TestMode)

	orderRepo := memory.NewOrderRepository()
	productRepo := memory.NewProductRepository()

	orderService := appOrder.NewService(orderRepo, id.NewUUIDGenerator(), nil)
	confirm := appOrder.NewConfirmOrderUseCase(orderRepo, productRepo, nil)
	productService := appProduct.NewService(productRepo)

	orders := NewOrderHandler(orderService, confirm, id.NewPaymentRefGenerator())
	products := NewProductHandler(productService)
	return NewRouter(orders, products, zap.NewNop()), orderRepo, productRepo
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createProduct(t *testing.T, router *gin.Engine, productID string, stock int) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/v1/products", gin.H{
		"productId": productID,
		"name":      "Widget " + productID,
		"price":     9.99,
		"stock":     stock,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func createOrder(t *testing.T, router *gin.Engine, productID string, qty int) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/v1/orders", gin.H{
		"userId": "user-1",
		"items":  []gin.H{{"productId": productID, "qty": qty}},
		"total":  19.98,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return body["orderId"].(string)
}

func TestCreateOrder_RendersCreated(t *testing.T) {
	router, _, _ := newTestRouter()

	orderID := createOrder(t, router, "p-1", 2)
	assert.NotEmpty(t, orderID)

	w := doJSON(router, http.MethodGet, "/v1/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "CREATED", body["status"])
	assert.Nil(t, body["paymentId"])
}

func TestCreateOrder_BadBodyIsRejected(t *testing.T) {
	router, _, _ := newTestRouter()

	w := doJSON(router, http.MethodPost, "/v1/orders", gin.H{"userId": "user-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, w)["error"])
}

func TestGetOrder_UnknownIs404(t *testing.T) {
	router, _, _ := newTestRouter()

	w := doJSON(router, http.MethodGet, "/v1/orders/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["error"])
}

func TestConfirmOrder_HappyPath(t *testing.T) {
	router, _, productRepo := newTestRouter()

	createProduct(t, router, "p-1", 10)
	orderID := createOrder(t, router, "p-1", 2)

	w := doJSON(router, http.MethodPost, "/v1/orders/"+orderID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "CONFIRMED", body["status"])
	assert.Contains(t, body["paymentId"], "pay_")

	p, err := productRepo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)
}

func TestConfirmOrder_SecondAttemptIs404(t *testing.T) {
	router, _, _ := newTestRouter()

	createProduct(t, router, "p-1", 10)
	orderID := createOrder(t, router, "p-1", 2)

	first := doJSON(router, http.MethodPost, "/v1/orders/"+orderID+"/confirm", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, http.MethodPost, "/v1/orders/"+orderID+"/confirm", nil)
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, second)["error"])
}

func TestConfirmOrder_UnknownOrderIs404(t *testing.T) {
	router, _, _ := newTestRouter()

	w := doJSON(router, http.MethodPost, "/v1/orders/ghost/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmOrder_InsufficientStockIs409ButOrderStaysConfirmed(t *testing.T) {
	router, orderRepo, _ := newTestRouter()

	createProduct(t, router, "p-1", 1)
	orderID := createOrder(t, router, "p-1", 5)

	w := doJSON(router, http.MethodPost, "/v1/orders/"+orderID+"/confirm", nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "STOCK_DECREMENT_FAILED", body["error"])
	assert.Equal(t, "p-1", body["productId"])

	stored, err := orderRepo.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", string(stored.Status))
}

func TestListOrdersByUser_Pages(t *testing.T) {
	router, _, _ := newTestRouter()

	for i := 0; i < 3; i++ {
		createOrder(t, router, fmt.Sprintf("p-%d", i), 1)
	}

	w := doJSON(router, http.MethodGet, "/v1/orders?userId=user-1&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Len(t, body["orders"], 2)
	require.NotEmpty(t, body["nextCursor"])

	next := doJSON(router, http.MethodGet, "/v1/orders?userId=user-1&limit=2&cursor="+body["nextCursor"].(string), nil)
	require.Equal(t, http.StatusOK, next.Code)
	assert.Len(t, decode(t, next)["orders"], 1)
}

func TestProductLifecycle(t *testing.T) {
	router, _, _ := newTestRouter()

	createProduct(t, router, "p-1", 5)

	// Duplicate create conflicts.
	w := doJSON(router, http.MethodPost, "/v1/products", gin.H{
		"productId": "p-1", "name": "dup", "price": 1.0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPatch, "/v1/products/p-1", gin.H{"price": 4.5, "status": "INACTIVE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 4.5, body["price"])
	assert.Equal(t, "INACTIVE", body["status"])

	w = doJSON(router, http.MethodDelete, "/v1/products/p-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodGet, "/v1/products/p-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter()

	w := doJSON(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
