package transport

import (
	"net/http"

	"studentmart-be/internal/checkout"
	"studentmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type acceptChangesRequest struct {
	Changes []checkout.PriceChange `json:"changes" binding:"required"`
}

type placeOrderRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	PickupLocation string `json:"pickup_location"`
	Notes          string `json:"notes"`
}

// reconcile is invoked when the user enters the checkout page. It
// reports price drift and dropped lines; the client must resolve a
// non-empty change set before placing the order.
func (h *Handler) reconcile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.checkouts.Reconcile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) acceptPriceChanges(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req acceptChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "changes are required"})
		return
	}

	if err := h.checkouts.AcceptPriceChanges(c.Request.Context(), userID, req.Changes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.carts.GetCart(c.Request.Context(), userID)})
}

func (h *Handler) placeOrder(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// The header form wins so retry libraries can set it uniformly.
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = req.IdempotencyKey
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())

	o, err := h.checkouts.PlaceOrder(c.Request.Context(), checkout.PlaceOrderParams{
		UserID:         userID,
		UserEmail:      email,
		IdempotencyKey: key,
		PickupLocation: req.PickupLocation,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": o})
}
