package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studentmart-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// Create materializes an order in one transaction: it re-reads live
	// prices (rejecting drift since reconciliation), decrements stock and
	// inserts the order with its line snapshots. A replayed idempotency
	// key returns the previously created order.
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, error)
	// UpdateStatus performs a compare-and-swap on (status, version);
	// cancelling restores the reserved stock in the same transaction.
	UpdateStatus(ctx context.Context, id string, from, to Status, version int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, user_email, total_amount, payment_method, status, pickup_location, notes, idempotency_key, version, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserEmail, &o.TotalAmount, &o.PaymentMethod,
		&o.Status, &o.PickupLocation, &o.Notes, &o.IdempotencyKey,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", o.UserID),
		zap.Int("item_count", len(o.Items)),
	)

	start := time.Now()

	// Idempotent replay: a retried submission after a timeout must not
	// create a second order.
	if existing, err := r.GetByIdempotencyKey(ctx, o.IdempotencyKey); err == nil {
		log.Info("idempotency key replay, returning existing order",
			zap.String("order_id", existing.ID),
		)
		return existing, nil
	} else if err != ErrOrderNotFound {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Re-validate each line against the live catalog under row locks.
	// This closes the window between reconciliation and order write.
	for _, item := range o.Items {
		var (
			livePrice decimal.Decimal
			liveStock int
		)
		err := tx.QueryRowContext(ctx,
			`SELECT price, stock FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&livePrice, &liveStock)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
		}
		if err != nil {
			return nil, err
		}

		if !livePrice.Equal(item.Price) {
			log.Warn("price drift detected at order write",
				zap.String("product_id", item.ProductID),
				zap.String("captured", item.Price.String()),
				zap.String("live", livePrice.String()),
			)
			return nil, ErrPriceChanged
		}

		if liveStock < item.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductID)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2`,
			item.Quantity, item.ProductID,
		); err != nil {
			return nil, err
		}
	}

	created := *o
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, user_email, total_amount, payment_method, status, pickup_location, notes, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, version, created_at, updated_at
	`,
		o.UserID, o.UserEmail, o.TotalAmount, o.PaymentMethod,
		string(o.Status), o.PickupLocation, o.Notes, o.IdempotencyKey,
	).Scan(&created.ID, &created.Version, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Position preserves cart order; UUID keys carry no insertion order.
	for i, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, product_id, name, price, quantity, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, created.ID, i, item.ProductID, item.Name, item.Price, item.Quantity, item.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("total", created.TotalAmount.String()),
		zap.Duration("duration", time.Since(start)),
	)

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE idempotency_key = $1`, key)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, error) {
	where := []string{}
	args := []any{}

	if opts.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, opts.UserID)
	}
	if opts.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(opts.Status))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	if opts.OldestFirst {
		query += ` ORDER BY created_at ASC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, nil
}

func (r *repository) fetchItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, price, quantity, image_url
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item)
	for rows.Next() {
		var (
			orderID string
			item    Item
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.ImageURL); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], item)
	}
	return out, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status, version int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND version = $4
	`, string(to), id, string(from), version)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("status CAS failed", zap.Int("expected_version", version))
		return ErrVersionConflict
	}

	// Cancelling returns the reserved stock to the catalog.
	if to == StatusCancelled {
		if _, err := tx.ExecContext(ctx, `
			UPDATE products p
			SET stock = p.stock + oi.quantity
			FROM order_items oi
			WHERE oi.order_id = $1 AND p.id = oi.product_id
		`, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order status updated")
	return nil
}
