package order

import (
	"context"
	"testing"

	"studentmart-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]*Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, from, to Status, version int) error {
	args := m.Called(ctx, id, from, to, version)
	return args.Error(0)
}

var (
	adminActor = Actor{UserID: "admin-1", Role: user.RoleAdmin}
	ownerActor = Actor{UserID: "u-1", Role: user.RoleUser}
	otherActor = Actor{UserID: "u-2", Role: user.RoleUser}
)

func pendingOrder() *Order {
	return &Order{ID: "o-1", UserID: "u-1", Status: StatusPending, Version: 1}
}

func TestUpdateStatus_AdminForward(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)
	repo.On("UpdateStatus", mock.Anything, "o-1", StatusPending, StatusConfirmed, 1).Return(nil)

	svc := NewService(repo)
	o, err := svc.UpdateStatus(context.Background(), adminActor, "o-1", StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, 2, o.Version)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_UserForwardForbidden(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)

	svc := NewService(repo)
	_, err := svc.UpdateStatus(context.Background(), ownerActor, "o-1", StatusConfirmed)

	assert.ErrorIs(t, err, ErrUnauthorized)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_OwnerCancelPending(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)
	repo.On("UpdateStatus", mock.Anything, "o-1", StatusPending, StatusCancelled, 1).Return(nil)

	svc := NewService(repo)
	o, err := svc.UpdateStatus(context.Background(), ownerActor, "o-1", StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestUpdateStatus_StrangerCannotCancel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)

	svc := NewService(repo)
	_, err := svc.UpdateStatus(context.Background(), otherActor, "o-1", StatusCancelled)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateStatus_OwnerCancelTooLate(t *testing.T) {
	ready := pendingOrder()
	ready.Status = StatusReadyForPickup

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(ready, nil)

	svc := NewService(repo)
	_, err := svc.UpdateStatus(context.Background(), ownerActor, "o-1", StatusCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_AdminCancelReady(t *testing.T) {
	ready := pendingOrder()
	ready.Status = StatusReadyForPickup

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(ready, nil)
	repo.On("UpdateStatus", mock.Anything, "o-1", StatusReadyForPickup, StatusCancelled, 1).Return(nil)

	svc := NewService(repo)
	_, err := svc.UpdateStatus(context.Background(), adminActor, "o-1", StatusCancelled)
	assert.NoError(t, err)
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	ready := pendingOrder()
	ready.Status = StatusReadyForPickup
	completed := pendingOrder()
	completed.Status = StatusCompleted

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "ready").Return(ready, nil)
	repo.On("GetByID", mock.Anything, "done").Return(completed, nil)

	svc := NewService(repo)

	// Backward movement is unsupported.
	_, err := svc.UpdateStatus(context.Background(), adminActor, "ready", StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal states have no exits.
	_, err = svc.UpdateStatus(context.Background(), adminActor, "done", StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_VersionConflictSurfaces(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)
	repo.On("UpdateStatus", mock.Anything, "o-1", StatusPending, StatusConfirmed, 1).
		Return(ErrVersionConflict)

	svc := NewService(repo)
	_, err := svc.UpdateStatus(context.Background(), adminActor, "o-1", StatusConfirmed)

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestGetDetail_Ownership(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o-1").Return(pendingOrder(), nil)

	svc := NewService(repo)

	_, err := svc.GetDetail(context.Background(), ownerActor, "o-1")
	assert.NoError(t, err)

	_, err = svc.GetDetail(context.Background(), otherActor, "o-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetDetail(context.Background(), adminActor, "o-1")
	assert.NoError(t, err)
}

func TestListAll_InvalidStatusFilter(t *testing.T) {
	svc := NewService(new(MockRepository))
	_, err := svc.ListAll(context.Background(), Status("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListAll_FCFSOrdering(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, ListOptions{Status: StatusPending, OldestFirst: true}).
		Return([]*Order{}, nil)

	svc := NewService(repo)
	_, err := svc.ListAll(context.Background(), StatusPending)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
