package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "display_name", "role", "created_at"}).
			AddRow("u-1", "jane@campus.edu", "Jane", "USER", time.Now())

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("jane@campus.edu", "hashed", "Jane", "USER").
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), "jane@campus.edu", "hashed", "Jane", "USER")
		assert.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err := repo.Create(context.Background(), "jane@campus.edu", "hashed", "Jane", "USER")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password", "display_name", "role", "created_at"}).
			AddRow("u-1", "jane@campus.edu", "hashed", "Jane", "USER", time.Now())

		mock.ExpectQuery("SELECT id, email, password, display_name, role, created_at").
			WithArgs("jane@campus.edu").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "jane@campus.edu")
		assert.NoError(t, err)
		assert.Equal(t, "hashed", u.Password)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password, display_name, role, created_at").
			WithArgs("ghost@campus.edu").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(context.Background(), "ghost@campus.edu")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_FindAdmins(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "role", "created_at"}).
		AddRow("a-1", "seller@campus.edu", "Seller", "ADMIN", time.Now())

	mock.ExpectQuery("SELECT id, email, display_name, role, created_at").
		WithArgs("ADMIN").
		WillReturnRows(rows)

	admins, err := repo.FindAdmins(context.Background())
	assert.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, RoleAdmin, admins[0].Role)
}
