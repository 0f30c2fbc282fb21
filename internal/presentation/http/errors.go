package http

import (
	"errors"
	"net/http"

	appOrder "github.com/minimart/catalog-api/internal/application/order"
	appProduct "github.com/minimart/catalog-api/internal/application/product"
	domOrder "github.com/minimart/catalog-api/internal/domain/order"
	domProduct "github.com/minimart/catalog-api/internal/domain/product"
	"github.com/minimart/catalog-api/internal/pkg/storeerr"

	"github.com/gin-gonic/gin"
)

// Stable error codes in response bodies.
const (
	codeBadRequest         = "BAD_REQUEST"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codeThrottled          = "THROTTLED"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
	codeInternal           = "INTERNAL_SERVER_ERROR"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondError(c *gin.Context, err error) {
	status, code := statusFromError(err)

	body := errorResponse{Error: code}
	// Client-caused failures carry detail; 5xx bodies stay generic.
	if status < http.StatusInternalServerError {
		body.Message = err.Error()
	}

	_ = c.Error(err)
	c.JSON(status, body)
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, appOrder.ErrValidation),
		errors.Is(err, appProduct.ErrValidation),
		errors.Is(err, storeerr.ErrMalformed):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, domOrder.ErrNotFound),
		errors.Is(err, domProduct.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, domOrder.ErrConflict),
		errors.Is(err, domProduct.ErrConflict):
		return http.StatusConflict, codeConflict
	case errors.Is(err, storeerr.ErrThrottled):
		return http.StatusTooManyRequests, codeThrottled
	case errors.Is(err, storeerr.ErrUnavailable):
		return http.StatusServiceUnavailable, codeServiceUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
