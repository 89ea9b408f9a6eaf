package restaurant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var restaurantColumns = []string{"id", "name", "email", "password", "menu", "created_at", "updated_at"}

func TestPostgresGetByID_DecodesMenu(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	menu := `[{"category":"Noodles","items":[{"id":"m-1","name":"Pad Thai","price":60}]}]`
	rows := sqlmock.NewRows(restaurantColumns).AddRow("r-1", "Baan Thai", "owner@example.com", "hash", []byte(menu), now, now)
	mock.ExpectQuery("FROM restaurants").WithArgs("r-1").WillReturnRows(rows)

	rest, err := repo.GetByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rest.Name != "Baan Thai" {
		t.Fatalf("unexpected name %q", rest.Name)
	}
	item, ok := rest.FindItem("m-1")
	if !ok || item.Price != 60 {
		t.Fatalf("expected menu item m-1 priced 60, got %+v ok=%v", item, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM restaurants").WithArgs("nobody@example.com").WillReturnRows(sqlmock.NewRows(restaurantColumns))

	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateMenu_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE restaurants").
		WithArgs("r-9", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateMenu(context.Background(), "r-9", []Category{{Category: "Drinks"}}, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_InsertsEmptyMenu(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("r-2", "Cafe", "cafe@example.com", "hash", []byte("[]"), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), Restaurant{
		ID: "r-2", Name: "Cafe", Email: "cafe@example.com", Password: "hash", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Menu == nil {
		t.Fatalf("created restaurant should carry an empty menu")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegister_ConcurrentDuplicateEmailMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	svc := NewService(NewPostgresRepository(db))

	// the email is free when checked, then another request inserts it first
	mock.ExpectQuery("FROM restaurants").WithArgs("owner@example.com").WillReturnRows(sqlmock.NewRows(restaurantColumns))
	mock.ExpectExec("INSERT INTO restaurants").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "restaurants_email_key"})

	if _, err := svc.Register(context.Background(), "Cafe", "owner@example.com", "secret"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
