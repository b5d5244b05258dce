package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "price", "stock", "category", "image_url",
		"description", "attributes", "seller_id", "created_at", "updated_at",
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("ByCategory", func(t *testing.T) {
		rows := productRows().
			AddRow("p-1", "Notebook", "45.50", 12, "writing", "https://img/1.png",
				nil, []byte(`[]`), "s-1", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM products WHERE category").
			WithArgs("writing").
			WillReturnRows(rows)

		products, err := repo.List(context.Background(), ListOptions{Category: "writing"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Notebook", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("45.50")))
	})

	t.Run("RecencyWithLimit", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products ORDER BY created_at DESC LIMIT").
			WithArgs(8).
			WillReturnRows(productRows())

		products, err := repo.List(context.Background(), ListOptions{Limit: 8})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products").
			WillReturnError(errors.New("db down"))

		_, err := repo.List(context.Background(), ListOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		attrs := []byte(`[{"name":"Size","variants":[{"value":"M","stock":3}]}]`)
		rows := productRows().
			AddRow("p-1", "Uniform Shirt", "250.00", 5, "uniform", "https://img/2.png",
				nil, attrs, "s-1", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs("p-1").
			WillReturnRows(rows)

		p, err := repo.GetByID(context.Background(), "p-1")
		require.NoError(t, err)
		require.Len(t, p.Attributes, 1)
		assert.Equal(t, "Size", p.Attributes[0].Name)
		assert.Equal(t, 3, p.Attributes[0].Variants[0].Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs("ghost").
			WillReturnRows(productRows())

		_, err := repo.GetByID(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "p-1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), ErrProductNotFound)
	})
}
