package checkout

import (
	"studentmart-be/internal/cart"

	"github.com/shopspring/decimal"
)

// PriceChange records one product whose live price drifted from the
// price captured when it was added to the cart.
type PriceChange struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	OldPrice    decimal.Decimal `json:"old_price"`
	NewPrice    decimal.Decimal `json:"new_price"`
	Quantity    int             `json:"quantity"`
	OldSubtotal decimal.Decimal `json:"old_subtotal"`
	NewSubtotal decimal.Decimal `json:"new_subtotal"`
}

// ReconcileResult is what the checkout page presents before payment
// method selection. A non-empty change set blocks order placement until
// the user accepts the new totals or returns to the cart.
type ReconcileResult struct {
	Changes []PriceChange `json:"changes"`
	// RemovedLines are cart lines whose product vanished from the
	// catalog; they are dropped from the cart rather than reconciled.
	RemovedLines []cart.Line     `json:"removed_lines,omitempty"`
	OldTotal     decimal.Decimal `json:"old_total"`
	NewTotal     decimal.Decimal `json:"new_total"`
	Difference   decimal.Decimal `json:"difference"`
}

func (r *ReconcileResult) HasChanges() bool {
	return len(r.Changes) > 0
}

// PlaceOrderParams carries everything the order writer needs.
type PlaceOrderParams struct {
	UserID         string
	UserEmail      string
	IdempotencyKey string
	PickupLocation string
	Notes          string
}
