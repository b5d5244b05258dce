package transport

import (
	"net/http"

	"studentmart-be/internal/logger"
	"studentmart-be/internal/middleware"
	"studentmart-be/internal/user"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the full HTTP surface. Identity resolution runs on
// every request; auth and role guards are applied per route group.
func NewRouter(h *Handler, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.Authenticate())
	r.Use(limiter.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.register)
		authRoutes.POST("/login", h.login)
		authRoutes.POST("/logout", h.logout)
		authRoutes.GET("/me", middleware.RequireAuth(), h.profile)
	}

	api.GET("/categories", h.listCategories)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	cartRoutes := api.Group("/cart", middleware.RequireAuth())
	{
		cartRoutes.GET("", h.getCart)
		cartRoutes.POST("/items", h.addToCart)
		cartRoutes.PATCH("/items/:productID", h.updateCartQuantity)
		cartRoutes.DELETE("/items/:productID", h.removeFromCart)
		cartRoutes.DELETE("", h.clearCart)
	}

	checkoutRoutes := api.Group("/checkout", middleware.RequireAuth())
	{
		checkoutRoutes.POST("/reconcile", h.reconcile)
		checkoutRoutes.POST("/accept", h.acceptPriceChanges)
		checkoutRoutes.POST("/orders", h.placeOrder)
	}

	orderRoutes := api.Group("/orders", middleware.RequireAuth())
	{
		orderRoutes.GET("", h.listMyOrders)
		orderRoutes.GET("/:id", h.getOrder)
		orderRoutes.POST("/:id/cancel", h.cancelOrder)
	}

	messageRoutes := api.Group("/messages", middleware.RequireAuth())
	{
		messageRoutes.GET("/recipients", h.listRecipients)
		messageRoutes.GET("/conversations", h.listConversations)
		messageRoutes.GET("/conversations/:id", h.getConversationMessages)
		messageRoutes.POST("", h.sendMessage)
	}

	admin := api.Group("/admin", middleware.RequireRole(user.RoleAdmin))
	{
		admin.GET("/orders", h.adminListOrders)
		admin.PATCH("/orders/:id/status", h.adminUpdateOrderStatus)
		admin.GET("/analytics/orders", h.adminOrderAnalytics)
		admin.GET("/analytics/products", h.adminProductStats)
		admin.GET("/analytics/summary", h.adminSummary)
		admin.GET("/metrics", h.adminMetrics)
		admin.POST("/products", h.adminCreateProduct)
		admin.PATCH("/products/:id", h.adminUpdateProduct)
		admin.DELETE("/products/:id", h.adminDeleteProduct)
		admin.POST("/images", h.adminUploadImage)
	}

	return r
}
