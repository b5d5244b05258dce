package product

import (
	"context"
	"strings"
	"time"

	"studentmart-be/internal/category"
	"studentmart-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProduct, sellerID string) (Product, error)
	Update(ctx context.Context, input UpdateProduct) (Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	if opts.Category != "" && !category.IsValid(opts.Category) {
		return nil, ErrInvalidCategory
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}

	start := time.Now()
	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.String("category", opts.Category),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProduct, sellerID string) (Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Product{}, ErrNameRequired
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return Product{}, ErrInvalidPrice
	}
	if !category.IsValid(input.Category) {
		return Product{}, ErrInvalidCategory
	}

	return s.repo.Create(ctx, input, sellerID)
}

func (s *service) Update(ctx context.Context, input UpdateProduct) (Product, error) {
	if input.ID == "" {
		return Product{}, ErrProductNotFound
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return Product{}, ErrNameRequired
	}
	if input.Price != nil && input.Price.LessThanOrEqual(decimal.Zero) {
		return Product{}, ErrInvalidPrice
	}
	if input.Category != nil && !category.IsValid(*input.Category) {
		return Product{}, ErrInvalidCategory
	}

	if input.Name == nil && input.Price == nil && input.Stock == nil &&
		input.Category == nil && input.ImageURL == nil &&
		input.Description == nil && input.Attributes == nil {
		return Product{}, ErrNoUpdateFields
	}

	return s.repo.Update(ctx, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}
