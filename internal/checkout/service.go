package checkout

import (
	"context"
	"errors"
	"fmt"

	"studentmart-be/internal/cart"
	"studentmart-be/internal/logger"
	"studentmart-be/internal/metrics"
	"studentmart-be/internal/order"
	"studentmart-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the checkout pipeline: price reconciliation on entry, then
// atomic order materialization.
type Service interface {
	// Reconcile re-fetches live prices for every distinct product in the
	// user's cart and diffs them against the prices captured at add
	// time. It runs once per checkout entry, not continuously.
	Reconcile(ctx context.Context, userID string) (*ReconcileResult, error)
	// AcceptPriceChanges overwrites each affected line's captured price
	// with the live price; quantities are untouched. Rejecting is the
	// absence of a call: no cart line is mutated.
	AcceptPriceChanges(ctx context.Context, userID string, changes []PriceChange) error
	// PlaceOrder snapshots the cart into an immutable order and clears
	// the cart. The cart is left intact on any failure.
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*order.Order, error)
}

type service struct {
	store       *cart.Store
	productRepo product.Repository
	orderRepo   order.Repository
	metrics     *metrics.Checkout
}

func NewService(store *cart.Store, productRepo product.Repository, orderRepo order.Repository, m *metrics.Checkout) Service {
	return &service{
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		metrics:     m,
	}
}

func (s *service) Reconcile(ctx context.Context, userID string) (*ReconcileResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reconcile"),
		zap.String("user_id", userID),
	)

	s.metrics.Reconciliations.Inc()

	lines := s.store.Get(userID)
	result := &ReconcileResult{
		Changes:    []PriceChange{},
		OldTotal:   decimal.Zero,
		NewTotal:   decimal.Zero,
		Difference: decimal.Zero,
	}
	if len(lines) == 0 {
		return result, nil
	}

	for _, line := range lines {
		live, err := s.productRepo.GetByID(ctx, line.ProductID)
		if errors.Is(err, product.ErrProductNotFound) {
			// The product vanished between add and checkout; drop the
			// line instead of reconciling against a dead record.
			log.Warn("product vanished from catalog, dropping cart line",
				zap.String("product_id", line.ProductID),
			)
			result.RemovedLines = append(result.RemovedLines, line)
			_ = s.store.Remove(userID, line.ProductID)
			continue
		}
		if err != nil {
			// Never let stale prices through silently: a failed fetch
			// aborts reconciliation and the caller surfaces the error.
			log.Error("live price fetch failed", zap.Error(err),
				zap.String("product_id", line.ProductID),
			)
			return nil, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
		}

		// Exact decimal comparison, no epsilon.
		if live.Price.Equal(line.Price) {
			continue
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		change := PriceChange{
			ProductID:   line.ProductID,
			Name:        line.Name,
			OldPrice:    line.Price,
			NewPrice:    live.Price,
			Quantity:    line.Quantity,
			OldSubtotal: line.Price.Mul(qty),
			NewSubtotal: live.Price.Mul(qty),
		}
		result.Changes = append(result.Changes, change)
		result.OldTotal = result.OldTotal.Add(change.OldSubtotal)
		result.NewTotal = result.NewTotal.Add(change.NewSubtotal)
	}

	result.Difference = result.NewTotal.Sub(result.OldTotal)

	if result.HasChanges() {
		s.metrics.PriceChanges.Add(uint64(len(result.Changes)))
		log.Info("price drift detected",
			zap.Int("changed_products", len(result.Changes)),
			zap.String("difference", result.Difference.String()),
		)
	}

	return result, nil
}

func (s *service) AcceptPriceChanges(ctx context.Context, userID string, changes []PriceChange) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AcceptPriceChanges"),
		zap.String("user_id", userID),
	)

	for _, c := range changes {
		if err := s.store.SetPrice(userID, c.ProductID, c.NewPrice); err != nil {
			if errors.Is(err, cart.ErrLineNotFound) {
				// Line was removed since reconciliation; nothing to fix.
				continue
			}
			return err
		}
	}

	log.Info("price changes accepted", zap.Int("count", len(changes)))
	return nil
}

func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("user_id", params.UserID),
	)

	if params.UserID == "" {
		return nil, ErrUnauthenticated
	}
	if params.IdempotencyKey == "" {
		return nil, ErrMissingKey
	}

	// A retried submission after a timeout replays the original order.
	// The cart is left alone: it may already hold lines for the user's
	// next purchase, and only a fresh confirmed write owns its lines.
	if existing, err := s.orderRepo.GetByIdempotencyKey(ctx, params.IdempotencyKey); err == nil {
		s.metrics.OrdersDuplicate.Inc()
		log.Info("duplicate submission, returning existing order",
			zap.String("order_id", existing.ID),
		)
		return existing, nil
	} else if !errors.Is(err, order.ErrOrderNotFound) {
		return nil, err
	}

	lines := s.store.Get(params.UserID)
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	if params.PickupLocation == "" {
		params.PickupLocation = "main-campus"
	}

	items := make([]order.Item, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item := order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	o := &order.Order{
		UserID:         params.UserID,
		UserEmail:      params.UserEmail,
		Items:          items,
		TotalAmount:    total,
		PaymentMethod:  order.PaymentMethodCashOnPickup,
		Status:         order.StatusPending,
		PickupLocation: params.PickupLocation,
		Notes:          params.Notes,
		IdempotencyKey: params.IdempotencyKey,
	}

	timer := metrics.StartTimer()
	created, err := s.orderRepo.Create(ctx, o)
	if err != nil {
		// The cart is left intact; the user is invited to retry.
		log.Error("order write failed", zap.Error(err),
			zap.Duration("duration", timer.Duration()),
		)
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.store.Clear(params.UserID)

	log.Info("order placed",
		zap.String("order_id", created.ID),
		zap.String("total", created.TotalAmount.String()),
		zap.Duration("duration", timer.Duration()),
	)

	return created, nil
}
