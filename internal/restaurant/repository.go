package restaurant

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("restaurant not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Restaurant, error)
	GetByEmail(ctx context.Context, email string) (Restaurant, error)
	Create(ctx context.Context, r Restaurant) (Restaurant, error)
	UpdateMenu(ctx context.Context, id string, menu []Category, updatedAt time.Time) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants []Restaurant
}

func NewInMemoryRepository(seed []Restaurant) *InMemoryRepository {
	repo := &InMemoryRepository{restaurants: make([]Restaurant, 0, len(seed))}
	repo.restaurants = append(repo.restaurants, seed...)
	return repo
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rest := range r.restaurants {
		if rest.ID == id {
			return rest, nil
		}
	}
	return Restaurant{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rest := range r.restaurants {
		if rest.Email == email {
			return rest, nil
		}
	}
	return Restaurant{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, rest Restaurant) (Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.restaurants {
		if existing.Email == rest.Email {
			return Restaurant{}, ErrEmailExists
		}
	}
	r.restaurants = append(r.restaurants, rest)
	return rest, nil
}

func (r *InMemoryRepository) UpdateMenu(ctx context.Context, id string, menu []Category, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rest := range r.restaurants {
		if rest.ID == id {
			r.restaurants[i].Menu = menu
			r.restaurants[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return ErrNotFound
}
