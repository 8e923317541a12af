package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/pkg/httpx"
)

type checkResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// checkFor — проверка формы по её виду (domain.FormOrder | domain.FormBuyer).
func (h *Handler) checkFor(form string) func(ctx context.Context, fields domain.FieldMap) (bool, map[string]string) {
	if form == domain.FormBuyer {
		return h.checkout.CheckBuyerInfo
	}
	return h.checkout.CheckOrderInfo
}

// checkForm — POST /checkout/{order,contacts}: тело — объект строк (поле → значение).
func (h *Handler) checkForm(form string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields domain.FieldMap
		if err := httpx.DecodeStrict(c, &fields); err != nil {
			msg := msgBadBody
			if status := httpx.BodyStatus(err); status != http.StatusBadRequest {
				msg = err.Error()
			}
			httpx.AbortJSON(c, httpx.BodyStatus(err), msg)
			return
		}
		if fields == nil {
			httpx.AbortJSON(c, http.StatusBadRequest, msgBadBody)
			return
		}

		ctx, cancel := h.reqCtx(c)
		defer cancel()

		ok, problems := h.checkFor(form)(ctx, fields)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, checkResponse{Valid: false, Errors: problems})
			return
		}
		c.JSON(http.StatusOK, checkResponse{Valid: true})
	}
}

// placeOrder — POST /order
func (h *Handler) placeOrder(c *gin.Context) {
	var req domain.PlaceOrderRequest
	if err := httpx.DecodeStrict(c, &req); err != nil {
		httpx.AbortJSON(c, httpx.BodyStatus(err), err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	sub, err := h.checkout.PlaceOrder(ctx, req)
	if err != nil {
		h.fail(c, "PlaceOrder", err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// getOrder — GET /order/:id
func (h *Handler) getOrder(c *gin.Context) {
	id := httpx.PathID(c, "id")
	if id == "" {
		httpx.AbortJSON(c, http.StatusBadRequest, "empty id")
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	sub, err := h.checkout.GetOrder(ctx, id)
	if err != nil {
		h.fail(c, "GetOrder", err)
		return
	}
	if sub == nil {
		httpx.AbortJSON(c, http.StatusNotFound, "order not found")
		return
	}
	c.JSON(http.StatusOK, sub)
}
