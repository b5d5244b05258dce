package checkout

import "errors"

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrMissingKey      = errors.New("idempotency key is required")
	ErrReconcileFailed = errors.New("failed to verify current prices")
)
