package http

import (
	"net/http"
	"strconv"
	"time"

	appProduct "github.com/minimart/catalog-api/internal/application/product"
	domain "github.com/minimart/catalog-api/internal/domain/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *appProduct.Service
}

func NewProductHandler(service *appProduct.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Stock     int     `json:"stock" binding:"gte=0"`
}

type updateProductRequest struct {
	Name   *string  `json:"name"`
	Price  *float64 `json:"price"`
	Stock  *int     `json:"stock"`
	Status *string  `json:"status"`
}

type productBody struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

type productPageBody struct {
	Products   []productBody `json:"products"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: codeBadRequest, Message: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), appProduct.CreateProductInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductBody(created))
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductBody(p))
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.service.List(c.Request.Context(), limit, c.Query("cursor"))
	if err != nil {
		respondError(c, err)
		return
	}

	body := productPageBody{Products: make([]productBody, 0, len(page.Products)), NextCursor: page.NextCursor}
	for _, p := range page.Products {
		body.Products = append(body.Products, toProductBody(p))
	}
	c.JSON(http.StatusOK, body)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: codeBadRequest, Message: err.Error()})
		return
	}

	patch := domain.Patch{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductBody(updated))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toProductBody(p *domain.Product) productBody {
	return productBody{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
