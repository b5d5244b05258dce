package cart

import "github.com/shopspring/decimal"

// Line is a pending purchase intent for one product. Name, image and
// price are denormalized at the moment of add; the captured price may
// legitimately diverge from the product's live price until checkout
// reconciles it.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price × quantity at the captured price.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
