package handlers

import (
	"net/http"

	"geobike_backend/internal/cart"

	"github.com/gin-gonic/gin"
)

// CartHandler prices a client-held cart with the same rules the storefront uses.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

// Summary handles POST /api/carrito/resumen with the stored cart array as body.
func (h *CartHandler) Summary(c *gin.Context) {
	var lines []cart.Line
	if !bindJSON(c, &lines, "CartSummary") {
		return
	}
	c.JSON(http.StatusOK, cart.FromLines(lines).Summary())
}
