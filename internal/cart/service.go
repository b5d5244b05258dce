package cart

import (
	"context"

	"studentmart-be/internal/logger"
	"studentmart-be/internal/product"

	"go.uber.org/zap"
)

// Service adds catalog awareness on top of the raw store: adding a line
// captures the product's live name, image and price at that moment.
type Service interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*Line, error)
	GetCart(ctx context.Context, userID string) []Line
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string)
}

type service struct {
	store       *Store
	productRepo product.Repository
}

func NewService(store *Store, productRepo product.Repository) Service {
	return &service{store: store, productRepo: productRepo}
}

func (s *service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.Warn("failed to fetch product for cart add", zap.Error(err))
		return nil, err
	}

	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Quantity:  quantity,
	}

	if err := s.store.Add(userID, line); err != nil {
		return nil, err
	}

	log.Info("cart line added", zap.String("price", p.Price.String()))
	return &line, nil
}

func (s *service) GetCart(ctx context.Context, userID string) []Line {
	return s.store.Get(userID)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return s.store.UpdateQuantity(userID, productID, quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID string) error {
	return s.store.Remove(userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID string) {
	s.store.Clear(userID)
}
