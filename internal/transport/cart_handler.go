package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	lines := h.carts.GetCart(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"items": lines})
}

func (h *Handler) addToCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	line, err := h.carts.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": line})
}

func (h *Handler) updateCartQuantity(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), userID, c.Param("productID"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.carts.GetCart(c.Request.Context(), userID)})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.carts.RemoveFromCart(c.Request.Context(), userID, c.Param("productID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.carts.GetCart(c.Request.Context(), userID)})
}

func (h *Handler) clearCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	h.carts.ClearCart(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"items": []any{}})
}
