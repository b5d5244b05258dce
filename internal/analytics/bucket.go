package analytics

import (
	"sort"
	"time"

	"studentmart-be/internal/order"

	"github.com/shopspring/decimal"
)

// Lookback windows per timeframe. Year has no cutoff: every order ever
// placed participates.
const (
	dayLookback   = 30 * 24 * time.Hour
	weekLookback  = 12 * 7 * 24 * time.Hour
	monthLookback = 12
)

// bucketKey collapses an order's creation time onto the start of its
// aggregation window.
func bucketKey(t time.Time, tf Timeframe) time.Time {
	switch tf {
	case TimeframeDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case TimeframeWeek:
		// Weeks start on Sunday.
		start := t.AddDate(0, 0, -int(t.Weekday()))
		return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
	case TimeframeMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
}

func bucketLabel(start time.Time, tf Timeframe) string {
	switch tf {
	case TimeframeDay:
		return start.Format("Jan 2")
	case TimeframeWeek:
		return "Week of " + start.Format("Jan 2")
	case TimeframeMonth:
		return start.Format("January 2006")
	default:
		return start.Format("2006")
	}
}

func inLookback(t, now time.Time, tf Timeframe) bool {
	switch tf {
	case TimeframeDay:
		return now.Sub(t) <= dayLookback
	case TimeframeWeek:
		return now.Sub(t) <= weekLookback
	case TimeframeMonth:
		cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, -(monthLookback - 1), 0)
		return !t.Before(cutoff)
	default:
		return true
	}
}

// OrdersByTimeframe groups orders into labelled windows relative to now.
// Only windows with at least one order are returned, oldest first.
func OrdersByTimeframe(orders []*order.Order, tf Timeframe, now time.Time) ([]Bucket, error) {
	if !tf.Valid() {
		return nil, ErrInvalidTimeframe
	}

	byStart := make(map[time.Time]*Bucket)
	for _, o := range orders {
		if !inLookback(o.CreatedAt, now, tf) {
			continue
		}
		start := bucketKey(o.CreatedAt, tf)
		b, ok := byStart[start]
		if !ok {
			b = &Bucket{
				Label:    bucketLabel(start, tf),
				Start:    start,
				Revenue:  decimal.Zero,
				ByStatus: make(map[order.Status]int),
			}
			byStart[start] = b
		}
		b.OrderCount++
		b.Revenue = b.Revenue.Add(o.TotalAmount)
		b.ByStatus[o.Status]++
	}

	buckets := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets, nil
}

// ProductStats aggregates quantity and revenue per product across all
// given orders, regardless of status or timeframe. Results are sorted
// by quantity descending, ties broken by name for stable output.
func ProductStats(orders []*order.Order) []ProductStat {
	byProduct := make(map[string]*ProductStat)
	for _, o := range orders {
		for _, item := range o.Items {
			st, ok := byProduct[item.ProductID]
			if !ok {
				st = &ProductStat{
					ProductID: item.ProductID,
					Name:      item.Name,
					Revenue:   decimal.Zero,
				}
				byProduct[item.ProductID] = st
			}
			st.Quantity += item.Quantity
			st.Revenue = st.Revenue.Add(item.Subtotal())
		}
	}

	stats := make([]ProductStat, 0, len(byProduct))
	for _, st := range byProduct {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Quantity != stats[j].Quantity {
			return stats[i].Quantity > stats[j].Quantity
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// Summarize computes the dashboard headline numbers. Revenue counts
// every non-cancelled order.
func Summarize(orders []*order.Order) Summary {
	s := Summary{TotalRevenue: decimal.Zero}
	for _, o := range orders {
		s.TotalOrders++
		switch o.Status {
		case order.StatusPending:
			s.PendingOrders++
		case order.StatusCompleted:
			s.CompletedCount++
		case order.StatusCancelled:
			s.CancelledCount++
		}
		if o.Status != order.StatusCancelled {
			s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount)
		}
	}
	return s
}
