package analytics

import (
	"context"
	"time"

	"studentmart-be/internal/logger"
	"studentmart-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	OrdersByTimeframe(ctx context.Context, tf Timeframe) ([]Bucket, error)
	ProductStats(ctx context.Context) ([]ProductStat, error)
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	orderRepo order.Repository
	now       func() time.Time
}

func NewService(orderRepo order.Repository) Service {
	return &service{orderRepo: orderRepo, now: time.Now}
}

func (s *service) OrdersByTimeframe(ctx context.Context, tf Timeframe) ([]Bucket, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "OrdersByTimeframe"),
		zap.String("timeframe", string(tf)),
	)

	if !tf.Valid() {
		return nil, ErrInvalidTimeframe
	}

	orders, err := s.orderRepo.List(ctx, order.ListOptions{})
	if err != nil {
		log.Error("failed to load orders", zap.Error(err))
		return nil, err
	}

	buckets, err := OrdersByTimeframe(orders, tf, s.now())
	if err != nil {
		return nil, err
	}

	log.Debug("orders bucketed",
		zap.Int("orders", len(orders)),
		zap.Int("buckets", len(buckets)),
	)
	return buckets, nil
}

func (s *service) ProductStats(ctx context.Context) ([]ProductStat, error) {
	orders, err := s.orderRepo.List(ctx, order.ListOptions{})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load orders for product stats", zap.Error(err))
		return nil, err
	}
	return ProductStats(orders), nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	orders, err := s.orderRepo.List(ctx, order.ListOptions{})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load orders for summary", zap.Error(err))
		return Summary{}, err
	}
	return Summarize(orders), nil
}
