package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrStorage            = errors.New("storage failure")
	ErrDuplicateOrderID   = errors.New("duplicate order id")
)

// Repository is the Order Store. Lists come back newest first, ties broken
// by the later insert first.
type Repository interface {
	Create(ctx context.Context, ord Order) (Order, error)
	GetByOrderID(ctx context.Context, orderID string) (Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string, statuses []Status) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (Order, error)
	DeleteByRestaurant(ctx context.Context, restaurantID string) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int64
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	repo := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	for _, ord := range seed {
		if ord.ID > repo.nextID {
			repo.nextID = ord.ID
		}
		repo.orders = append(repo.orders, ord)
	}
	return repo
}

// Len reports how many orders are stored.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func (r *InMemoryRepository) Create(ctx context.Context, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.orders {
		if existing.OrderID == ord.OrderID {
			return Order{}, ErrDuplicateOrderID
		}
	}

	r.nextID++
	ord.ID = r.nextID
	ord.Items = cloneItems(ord.Items)
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.OrderID == orderID {
			ord.Items = cloneItems(ord.Items)
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string, statuses []Status) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.RestaurantID != restaurantID || !statusIn(ord.Status, statuses) {
			continue
		}
		ord.Items = cloneItems(ord.Items)
		result = append(result, ord)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.OrderID == orderID {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = updatedAt
			updated := r.orders[i]
			updated.Items = cloneItems(updated.Items)
			return updated, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	return r.deleteWhere(func(ord Order) bool { return ord.RestaurantID == restaurantID }), nil
}

func (r *InMemoryRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.deleteWhere(func(ord Order) bool { return ord.CreatedAt.Before(cutoff) }), nil
}

func (r *InMemoryRepository) deleteWhere(match func(Order) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.orders[:0]
	var deleted int64
	for _, ord := range r.orders {
		if match(ord) {
			deleted++
			continue
		}
		kept = append(kept, ord)
	}
	r.orders = kept
	return deleted
}

func statusIn(s Status, statuses []Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
