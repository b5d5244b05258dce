package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, hashedPassword, displayName, role string) (User, error) {
	args := m.Called(ctx, email, hashedPassword, displayName, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindAdmins(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	repo := new(MockRepository)
	repo.On("Create", mock.Anything, "jane@campus.edu", mock.Anything, "Jane", "USER").
		Return(User{ID: "u-1", Email: "jane@campus.edu", DisplayName: "Jane", Role: RoleUser}, nil)

	svc := NewService(repo)
	token, u, err := svc.Register(context.Background(), "Jane@Campus.edu", "secret1", "Jane")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, RoleUser, u.Role)
	repo.AssertExpectations(t)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := NewService(new(MockRepository))
	_, _, err := svc.Register(context.Background(), "jane@campus.edu", "12345", "Jane")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(User{}, ErrEmailExists)

	svc := NewService(repo)
	_, _, err := svc.Register(context.Background(), "jane@campus.edu", "secret1", "Jane")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	hash, err := HashPassword("rightpass")
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("FindByEmail", mock.Anything, "jane@campus.edu").
		Return(User{ID: "u-1", Email: "jane@campus.edu", Password: hash, Role: RoleUser}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@campus.edu").
		Return(User{}, ErrUserNotFound)

	svc := NewService(repo)

	// Unknown email and wrong password collapse into the same error.
	_, _, err = svc.Login(context.Background(), "ghost@campus.edu", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "jane@campus.edu", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, u, err := svc.Login(context.Background(), "jane@campus.edu", "rightpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, u.Password)
}

func TestFriendlyMessage(t *testing.T) {
	assert.Equal(t,
		"Password must be at least 6 characters long.",
		FriendlyMessage(ErrWeakPassword),
	)
	assert.Equal(t,
		"This email is already registered. Please log in or use a different email.",
		FriendlyMessage(ErrEmailExists),
	)
	// Fallback keeps the raw message.
	assert.Equal(t, "boom", FriendlyMessage(errors.New("boom")))
	assert.Equal(t, "", FriendlyMessage(nil))
}
