package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Checkout groups the storefront's in-process counters; a single
// instance is created at wiring time and shared by the services.
type Checkout struct {
	OrdersPlaced    Counter
	OrdersDuplicate Counter
	Reconciliations Counter
	PriceChanges    Counter
}

func (m *Checkout) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_placed":    m.OrdersPlaced.Load(),
		"orders_duplicate": m.OrdersDuplicate.Load(),
		"reconciliations":  m.Reconciliations.Load(),
		"price_changes":    m.PriceChanges.Load(),
	}
}
