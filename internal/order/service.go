package order

import (
	"context"

	"studentmart-be/internal/logger"
	"studentmart-be/internal/user"

	"go.uber.org/zap"
)

// Actor identifies who is asking for a transition.
type Actor struct {
	UserID string
	Role   user.Role
}

type Service interface {
	ListForUser(ctx context.Context, userID string) ([]*Order, error)
	// ListAll serves the admin dashboard, oldest first (first come,
	// first served), optionally filtered by status.
	ListAll(ctx context.Context, status Status) ([]*Order, error)
	GetDetail(ctx context.Context, actor Actor, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID string, to Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx, ListOptions{UserID: userID})
}

func (s *service) ListAll(ctx context.Context, status Status) ([]*Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, ListOptions{Status: status, OldestFirst: true})
}

func (s *service) GetDetail(ctx context.Context, actor Actor, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Users only see their own orders.
	if !actor.Role.Allows(user.RoleAdmin) && o.UserID != actor.UserID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID string, to Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID),
		zap.String("to", string(to)),
	)

	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, to) {
		log.Warn("rejected transition", zap.String("from", string(o.Status)))
		return nil, ErrInvalidTransition
	}

	isAdmin := actor.Role.Allows(user.RoleAdmin)

	if to == StatusCancelled {
		// Owners may cancel while pending/confirmed; admins from any
		// non-terminal state.
		if !isAdmin {
			if o.UserID != actor.UserID {
				return nil, ErrUnauthorized
			}
			if !UserMayCancel(o.Status) {
				return nil, ErrInvalidTransition
			}
		}
	} else if !isAdmin {
		// Forward progression is admin-only.
		return nil, ErrUnauthorized
	}

	from := o.Status
	if err := s.repo.UpdateStatus(ctx, orderID, from, to, o.Version); err != nil {
		return nil, err
	}

	o.Status = to
	o.Version++

	log.Info("order status transition applied", zap.String("from", string(from)))
	return o, nil
}
