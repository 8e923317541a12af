package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/internal/usecase"
	"github.com/Gunvolt24/larek/pkg/httpx"
	"github.com/Gunvolt24/larek/pkg/validate"
)

const (
	msgInternal = "internal server error"
	msgBadBody  = "request body must be a JSON object of strings"
)

// Handler — HTTP-обработчики каталога, корзины и оформления заказа.
type Handler struct {
	catalog    ports.CatalogReader
	checkout   ports.CheckoutService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — reqTimeout <= 0 отключает таймаут на обработку.
func NewHandler(catalog ports.CatalogReader, checkout ports.CheckoutService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{catalog: catalog, checkout: checkout, log: log, reqTimeout: reqTimeout}
}

// reqCtx — контекст запроса с таймаутом обработчика.
func (h *Handler) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}

// statusOf — HTTP-статус для ошибки сценария оформления.
func statusOf(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalidOrderInfo), errors.Is(err, validate.ErrInvalidBuyerInfo):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrEmptyBasket), errors.Is(err, usecase.ErrNotForSale):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnknownProduct):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail — ответ на ошибку: 5xx логируются и не раскрывают деталей.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
		httpx.AbortJSON(c, status, msgInternal)
		return
	}
	httpx.AbortJSON(c, status, err.Error())
}
