package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/wichananm65/qr-menu-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const orderColumns = `id, order_id, restaurant_id, restaurant_name, customer, items, total_price, status, created_at, updated_at`

const (
	insertOrderQuery = `
		INSERT INTO orders (order_id, restaurant_id, restaurant_name, customer, items, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns
	getOrderQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	listOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC, id DESC
	`
	listOrdersByStatusQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC, id DESC
	`
	updateStatusQuery = `
		UPDATE orders
		SET status = $2,
			updated_at = $3
		WHERE order_id = $1
		RETURNING ` + orderColumns
	deleteByRestaurantQuery = `DELETE FROM orders WHERE restaurant_id = $1`
	deleteCreatedBeforeQuery = `DELETE FROM orders WHERE created_at < $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ord Order) (Order, error) {
	if ord.Items == nil {
		ord.Items = []Item{}
	}
	customerJSON, err := json.Marshal(ord.Customer)
	if err != nil {
		return Order{}, err
	}
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	// the stored row is returned so callers see database precision
	created, err := scanOrder(r.db.QueryRowContext(ctx, insertOrderQuery,
		ord.OrderID, ord.RestaurantID, ord.RestaurantName, customerJSON, itemsJSON,
		ord.TotalPrice, string(ord.Status), ord.CreatedAt, ord.UpdatedAt))
	if database.IsUniqueViolation(err) {
		return Order{}, ErrDuplicateOrderID
	}
	return created, err
}

func (r *PostgresRepository) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string, statuses []Status) ([]Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = r.db.QueryContext(ctx, listOrdersQuery, restaurantID)
	} else {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		rows, err = r.db.QueryContext(ctx, listOrdersByStatusQuery, restaurantID, pq.Array(values))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, orderID, string(status), updatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return ord, err
}

// DeleteByRestaurant and DeleteCreatedBefore each run as one statement, so
// the count is either the full match set or nothing on error.
func (r *PostgresRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	return r.execDelete(ctx, deleteByRestaurantQuery, restaurantID)
}

func (r *PostgresRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.execDelete(ctx, deleteCreatedBeforeQuery, cutoff)
}

func (r *PostgresRepository) execDelete(ctx context.Context, query string, arg any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord          Order
		customerJSON []byte
		itemsJSON    []byte
		status       string
	)
	err := row.Scan(&ord.ID, &ord.OrderID, &ord.RestaurantID, &ord.RestaurantName,
		&customerJSON, &itemsJSON, &ord.TotalPrice, &status, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	if len(customerJSON) > 0 {
		if err := json.Unmarshal(customerJSON, &ord.Customer); err != nil {
			return Order{}, err
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
			return Order{}, err
		}
	}
	if ord.Items == nil {
		ord.Items = []Item{}
	}
	ord.Status = Status(status)
	ord.OrderTime = ord.CreatedAt
	return ord, nil
}
