package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studentmart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProduct, sellerID string) (Product, error)
	Update(ctx context.Context, input UpdateProduct) (Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price, stock, category, image_url, description, attributes, seller_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var (
		p        Product
		attrsRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.Category,
		&p.ImageURL, &p.Description, &attrsRaw, &p.SellerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if len(attrsRaw) > 0 {
		if err := json.Unmarshal(attrsRaw, &p.Attributes); err != nil {
			return Product{}, fmt.Errorf("failed to decode attributes: %w", err)
		}
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	where := []string{}
	args := []any{}

	if opts.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, opts.Category)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("product list fetched",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProduct, sellerID string) (Product, error) {
	attrs, err := json.Marshal(input.Attributes)
	if err != nil {
		return Product{}, err
	}

	stock := 10
	if input.Stock != nil {
		stock = *input.Stock
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, stock, category, image_url, description, attributes, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		input.Name, input.Price, stock, input.Category,
		input.ImageURL, input.Description, attrs, sellerID,
	)

	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, input UpdateProduct) (Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.Category != nil {
		add("category", *input.Category)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Attributes != nil {
		attrs, err := json.Marshal(input.Attributes)
		if err != nil {
			return Product{}, err
		}
		add("attributes", attrs)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args)+1, productColumns,
	)
	args = append(args, input.ID)

	row := r.db.QueryRowContext(ctx, query, args...)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
