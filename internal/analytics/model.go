package analytics

import (
	"time"

	"studentmart-be/internal/order"

	"github.com/shopspring/decimal"
)

type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear:
		return true
	}
	return false
}

// Bucket is one aggregation window of order activity. Buckets are
// returned oldest first and only for windows that contain at least one
// order.
type Bucket struct {
	Label      string               `json:"label"`
	Start      time.Time            `json:"start"`
	OrderCount int                  `json:"order_count"`
	Revenue    decimal.Decimal      `json:"revenue"`
	ByStatus   map[order.Status]int `json:"by_status"`
}

// ProductStat aggregates sold quantity and revenue for one product
// across the considered orders. Cancelled orders are excluded.
type ProductStat struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Summary is the admin dashboard headline block.
type Summary struct {
	TotalOrders    int             `json:"total_orders"`
	PendingOrders  int             `json:"pending_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	CompletedCount int             `json:"completed_count"`
	CancelledCount int             `json:"cancelled_count"`
}
