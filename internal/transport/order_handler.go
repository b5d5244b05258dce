package transport

import (
	"net/http"

	"studentmart-be/internal/order"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listMyOrders(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) getOrder(c *gin.Context) {
	o, err := h.orders.GetDetail(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// cancelOrder is the only status change a buyer may request.
func (h *Handler) cancelOrder(c *gin.Context) {
	o, err := h.orders.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), order.StatusCancelled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}
