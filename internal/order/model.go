package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentMethodCashOnPickup = "cash-on-pickup"

type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserEmail      string          `json:"user_email"`
	Items          []Item          `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaymentMethod  string          `json:"payment_method"`
	Status         Status          `json:"status"`
	PickupLocation string          `json:"pickup_location"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"-"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Item is an immutable snapshot of a cart line at order-creation time.
// Later catalog changes never alter a placed order's lines or total.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ListOptions filters order listings.
type ListOptions struct {
	UserID string // empty = all orders (admin)
	Status Status // empty = any status
	// Admin listings are served oldest first (first come, first served);
	// user listings newest first.
	OldestFirst bool
}
