package transport

import (
	"errors"
	"net/http"

	"studentmart-be/internal/analytics"
	"studentmart-be/internal/cart"
	"studentmart-be/internal/checkout"
	"studentmart-be/internal/imagehost"
	"studentmart-be/internal/message"
	"studentmart-be/internal/metrics"
	"studentmart-be/internal/order"
	"studentmart-be/internal/product"
	"studentmart-be/internal/user"
	"studentmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries every service the HTTP surface dispatches into. It is
// assembled once at startup; nothing here is a package-level singleton.
type Handler struct {
	users     user.Service
	products  product.Service
	carts     cart.Service
	checkouts checkout.Service
	orders    order.Service
	analytics analytics.Service
	messages  message.Service
	uploader  imagehost.Uploader
	metrics   *metrics.Checkout
}

func NewHandler(
	users user.Service,
	products product.Service,
	carts cart.Service,
	checkouts checkout.Service,
	orders order.Service,
	analyticsSvc analytics.Service,
	messages message.Service,
	uploader imagehost.Uploader,
	m *metrics.Checkout,
) *Handler {
	return &Handler{
		users:     users,
		products:  products,
		carts:     carts,
		checkouts: checkouts,
		orders:    orders,
		analytics: analyticsSvc,
		messages:  messages,
		uploader:  uploader,
		metrics:   m,
	}
}

// statusFor maps domain errors onto HTTP status codes. Unknown errors
// are internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, message.ErrConversationNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, checkout.ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, message.ErrNotParticipant):
		return http.StatusForbidden

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrVersionConflict),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrPriceChanged),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrProductUnavailable):
		return http.StatusConflict

	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrNoUpdateFields),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrMissingKey),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, analytics.ErrInvalidTimeframe),
		errors.Is(err, message.ErrEmptyText),
		errors.Is(err, message.ErrNoRecipient):
		return http.StatusBadRequest

	case errors.Is(err, checkout.ErrReconcileFailed),
		errors.Is(err, imagehost.ErrUploadFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := user.FriendlyMessage(err)
	if status == http.StatusInternalServerError {
		msg = "something went wrong"
	}
	c.JSON(status, gin.H{"error": msg})
}

// callerID returns the authenticated user, or aborts with 401. Routes
// behind RequireAuth never hit the abort path; this is the belt for
// handlers wired without it.
func callerID(c *gin.Context) (string, bool) {
	id, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return id, ok
}

func actorFrom(c *gin.Context) order.Actor {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	role := user.Role(utils.GetUserRoleFromContext(c.Request.Context()))
	return order.Actor{UserID: id, Role: role}
}
