package restaurant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/wichananm65/qr-menu-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getRestaurantByIDQuery = `
		SELECT id, name, email, password, menu, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`
	getRestaurantByEmailQuery = `
		SELECT id, name, email, password, menu, created_at, updated_at
		FROM restaurants
		WHERE email = $1
	`
	insertRestaurantQuery = `
		INSERT INTO restaurants (id, name, email, password, menu, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	updateMenuQuery = `
		UPDATE restaurants
		SET menu = $2,
			updated_at = $3
		WHERE id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Restaurant, error) {
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, getRestaurantByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Restaurant{}, ErrNotFound
	}
	return rest, err
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Restaurant, error) {
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, getRestaurantByEmailQuery, email))
	if errors.Is(err, sql.ErrNoRows) {
		return Restaurant{}, ErrNotFound
	}
	return rest, err
}

func (r *PostgresRepository) Create(ctx context.Context, rest Restaurant) (Restaurant, error) {
	if rest.Menu == nil {
		rest.Menu = []Category{}
	}
	menuJSON, err := json.Marshal(rest.Menu)
	if err != nil {
		return Restaurant{}, err
	}

	_, err = r.db.ExecContext(ctx, insertRestaurantQuery,
		rest.ID, rest.Name, rest.Email, rest.Password, menuJSON, rest.CreatedAt, rest.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return Restaurant{}, ErrEmailExists
	}
	if err != nil {
		return Restaurant{}, err
	}
	return rest, nil
}

func (r *PostgresRepository) UpdateMenu(ctx context.Context, id string, menu []Category, updatedAt time.Time) error {
	if menu == nil {
		menu = []Category{}
	}
	menuJSON, err := json.Marshal(menu)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, updateMenuQuery, id, menuJSON, updatedAt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRestaurant(row rowScanner) (Restaurant, error) {
	var (
		rest     Restaurant
		menuJSON []byte
	)
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Email, &rest.Password, &menuJSON, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
		return Restaurant{}, err
	}
	if len(menuJSON) > 0 {
		if err := json.Unmarshal(menuJSON, &rest.Menu); err != nil {
			return Restaurant{}, err
		}
	}
	if rest.Menu == nil {
		rest.Menu = []Category{}
	}
	return rest, nil
}
