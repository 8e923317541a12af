package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/pkg/httpx"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

type productList struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

type basketRequest struct {
	IDs []string `json:"ids"`
}

type basketResponse struct {
	Items []domain.BasketEntry `json:"items"`
}

// listProducts — GET /product?limit=&offset=
func (h *Handler) listProducts(c *gin.Context) {
	all := h.catalog.Snapshot().All()
	limit, offset := httpx.ParseLimitOffset(c, defaultPageSize, maxPageSize)

	lo := min(offset, len(all))
	hi := min(lo+limit, len(all))
	c.JSON(http.StatusOK, productList{Total: len(all), Items: all[lo:hi]})
}

// getProduct — GET /product/:id
func (h *Handler) getProduct(c *gin.Context) {
	id := httpx.PathID(c, "id")
	p, ok := h.catalog.Product(id)
	if !ok {
		httpx.AbortJSON(c, http.StatusNotFound, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// getCatalog — GET /catalog: товары и preview одним снимком.
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Snapshot().View())
}

// basket — POST /basket {"ids": [...]}
func (h *Handler) basket(c *gin.Context) {
	var req basketRequest
	if err := httpx.DecodeStrict(c, &req); err != nil {
		httpx.AbortJSON(c, httpx.BodyStatus(err), err.Error())
		return
	}
	entries, err := h.catalog.Basket(req.IDs)
	if err != nil {
		h.fail(c, "basket", err)
		return
	}
	c.JSON(http.StatusOK, basketResponse{Items: entries})
}
