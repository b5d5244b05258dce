package transport

import (
	"net/http"

	"studentmart-be/internal/analytics"
	"studentmart-be/internal/order"
	"studentmart-be/internal/product"

	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// adminListOrders serves the fulfillment queue: oldest orders first so
// they are processed in arrival order.
func (h *Handler) adminListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context(), order.Status(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) adminUpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), order.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func (h *Handler) adminOrderAnalytics(c *gin.Context) {
	tf := analytics.Timeframe(c.DefaultQuery("timeframe", string(analytics.TimeframeDay)))

	buckets, err := h.analytics.OrdersByTimeframe(c.Request.Context(), tf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeframe": tf, "buckets": buckets})
}

func (h *Handler) adminProductStats(c *gin.Context) {
	stats, err := h.analytics.ProductStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": stats})
}

func (h *Handler) adminSummary(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *Handler) adminMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"counters": h.metrics.Snapshot()})
}

func (h *Handler) adminCreateProduct(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input product.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}

	p, err := h.products.Create(c.Request.Context(), input, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *Handler) adminUpdateProduct(c *gin.Context) {
	var input product.UpdateProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	input.ID = c.Param("id")

	p, err := h.products.Update(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *Handler) adminDeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// adminUploadImage proxies a product image to the external host and
// returns its public URL for use in a subsequent product create/update.
func (h *Handler) adminUploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
