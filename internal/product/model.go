package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttributeVariant is one selectable value of an attribute, with its own
// stock count (e.g. size "M" with 4 left).
type AttributeVariant struct {
	Value string `json:"value"`
	Stock int    `json:"stock"`
}

type Attribute struct {
	Name     string             `json:"name"`
	Variants []AttributeVariant `json:"variants"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Description *string         `json:"description,omitempty"`
	Attributes  []Attribute     `json:"attributes,omitempty"`
	SellerID    string          `json:"seller_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListOptions selects catalog records by category equality or recency.
type ListOptions struct {
	Category string
	Limit    int
}

type NewProduct struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Description *string         `json:"description"`
	Attributes  []Attribute     `json:"attributes"`
}

type UpdateProduct struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
	Description *string          `json:"description"`
	Attributes  []Attribute      `json:"attributes"`
}
