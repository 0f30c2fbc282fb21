package http

import (
	"net/http"
	"strconv"
	"time"

	appOrder "github.com/minimart/catalog-api/internal/application/order"
	domain "github.com/minimart/catalog-api/internal/domain/order"

	"github.com/gin-gonic/gin"
)

// PaymentRefSource issues the opaque payment reference attached to a
// confirmation. Generation stays at this boundary; the use case never
// learns how references are produced.
type PaymentRefSource interface {
	NewRef() string
}

type OrderHandler struct {
	service *appOrder.Service
	confirm *appOrder.ConfirmOrderUseCase
	payRefs PaymentRefSource
}

func NewOrderHandler(service *appOrder.Service, confirm *appOrder.ConfirmOrderUseCase, payRefs PaymentRefSource) *OrderHandler {
	return &OrderHandler{
		service: service,
		confirm: confirm,
		payRefs: payRefs,
	}
}

type lineItemBody struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

type createOrderRequest struct {
	UserID string         `json:"userId" binding:"required"`
	Items  []lineItemBody `json:"items" binding:"required,min=1,dive"`
	Total  float64        `json:"total" binding:"required,gt=0"`
}

type orderBody struct {
	OrderID   string         `json:"orderId"`
	UserID    string         `json:"userId"`
	Items     []lineItemBody `json:"items"`
	Total     float64        `json:"total"`
	Status    string         `json:"status"`
	PaymentID string         `json:"paymentId,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

type orderPageBody struct {
	Orders     []orderBody `json:"orders"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: codeBadRequest, Message: err.Error()})
		return
	}

	items := make([]appOrder.LineItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = appOrder.LineItemInput{ProductID: it.ProductID, Qty: it.Qty}
	}

	created, err := h.service.CreateOrder(c.Request.Context(), appOrder.CreateOrderInput{
		UserID: req.UserID,
		Items:  items,
		Total:  req.Total,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderBody(created))
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderBody(o))
}

func (h *OrderHandler) ListOrdersByUser(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.service.ListByUser(c.Request.Context(), c.Query("userId"), limit, c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	body := orderPageBody{Orders: make([]orderBody, 0, len(page.Orders)), NextCursor: page.NextCursor}
	for _, o := range page.Orders {
		body.Orders = append(body.Orders, toOrderBody(o))
	}
	c.JSON(http.StatusOK, body)
}

// ConfirmOrder renders the tagged use-case outcome: 200 with the confirmed
// record, 404 when the confirm condition did not match, 409 when the order
// confirmed but the stock adjustment failed.
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	result, err := h.confirm.Execute(c.Request.Context(), c.Param("id"), h.payRefs.NewRef())
	if err != nil {
		respondError(c, err)
		return
	}

	switch result.Outcome {
	case appOrder.OutcomeAlreadyResolved:
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   codeNotFound,
			Message: "order cannot be confirmed",
		})
	case appOrder.OutcomeDecrementFailed:
		c.JSON(http.StatusConflict, gin.H{
			"error":     "STOCK_DECREMENT_FAILED",
			"message":   result.Cause.Error(),
			"productId": result.FailedItem.ProductID,
			"order":     toOrderBody(result.Order),
		})
	default:
		c.JSON(http.StatusOK, toOrderBody(result.Order))
	}
}

func toOrderBody(o *domain.Order) orderBody {
	items := make([]lineItemBody, len(o.Items))
	for i, it := range o.Items {
		items[i] = lineItemBody{ProductID: it.ProductID, Qty: it.Qty}
	}
	return orderBody{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total,
		Status:    string(o.Status),
		PaymentID: o.PaymentID,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}
