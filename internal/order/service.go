package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/wichananm65/qr-menu-backend/internal/restaurant"
)

// Restaurants is the slice of the menu store that intake needs.
type Restaurants interface {
	GetByID(ctx context.Context, id string) (restaurant.Restaurant, error)
}

// IdempotencyStore remembers which order a client idempotency key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Remember(ctx context.Context, key, orderID string) error
}

type Service struct {
	repo        Repository
	restaurants Restaurants
	idem        IdempotencyStore
	now         func() time.Time
}

type Option func(*Service)

func WithIdempotency(store IdempotencyStore) Option {
	return func(s *Service) { s.idem = store }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, restaurants Restaurants, opts ...Option) *Service {
	s := &Service{repo: repo, restaurants: restaurants, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type PlaceOrderInput struct {
	RestaurantID   string
	Customer       Customer
	Items          []Item
	TotalPrice     float64
	Status         string
	IdempotencyKey string
}

// PlaceOrder validates the input, snapshots item data and stores a new
// order. replayed is true when the idempotency key already produced an
// order, which is returned unchanged.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (ord Order, replayed bool, err error) {
	key := idempotencyKey(in.RestaurantID, in.IdempotencyKey)
	if key != "" && s.idem != nil {
		if existing, ok := s.replay(ctx, key, in.RestaurantID); ok {
			return existing, true, nil
		}
	}

	if strings.TrimSpace(in.RestaurantID) == "" {
		return Order{}, false, fmt.Errorf("%w: restaurantId is required", ErrInvalidArgument)
	}

	status := StatusPending
	if strings.TrimSpace(in.Status) != "" {
		if status, err = ParseStatus(in.Status); err != nil {
			return Order{}, false, err
		}
	}

	rest, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return Order{}, false, ErrRestaurantNotFound
		}
		return Order{}, false, fmt.Errorf("%w: load restaurant: %v", ErrStorage, err)
	}

	items, total, err := snapshotItems(rest, in.Items)
	if err != nil {
		return Order{}, false, err
	}
	if !sameAmount(total, in.TotalPrice) {
		log.Warnw("order total mismatch", "restaurantId", rest.ID, "submitted", in.TotalPrice, "computed", total)
	}

	customer := in.Customer
	if customer.CustomerID == "" {
		customer.CustomerID = uuid.NewString()
	}

	// Postgres keeps microseconds
	now := s.now().UTC().Truncate(time.Microsecond)
	created, err := s.repo.Create(ctx, Order{
		OrderID:        uuid.NewString(),
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		Customer:       customer,
		Items:          items,
		TotalPrice:     total,
		Status:         status,
		OrderTime:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return Order{}, false, fmt.Errorf("%w: create order: %v", ErrStorage, err)
	}

	if key != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, key, created.OrderID); err != nil {
			log.Warnw("remember idempotency key failed", "orderId", created.OrderID, "error", err)
		}
	}
	return created, false, nil
}

// idempotencyKey scopes a client key to the restaurant being ordered from,
// so the same key sent to two restaurants never resolves across them.
func idempotencyKey(restaurantID, clientKey string) string {
	clientKey = strings.TrimSpace(clientKey)
	restaurantID = strings.TrimSpace(restaurantID)
	if clientKey == "" || restaurantID == "" {
		return ""
	}
	return restaurantID + ":" + clientKey
}

func (s *Service) replay(ctx context.Context, key, restaurantID string) (Order, bool) {
	orderID, ok, err := s.idem.Lookup(ctx, key)
	if err != nil {
		log.Warnw("idempotency lookup failed", "error", err)
		return Order{}, false
	}
	if !ok {
		return Order{}, false
	}

	existing, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		// the order may have been cleaned up since; place a fresh one
		return Order{}, false
	}
	if existing.RestaurantID != restaurantID {
		log.Warnw("idempotency key resolved to another restaurant", "orderId", existing.OrderID, "restaurantId", restaurantID)
		return Order{}, false
	}
	return existing, true
}

// snapshotItems prices every line from the menu when the item is known and
// recomputes line totals and the order total.
func snapshotItems(rest restaurant.Restaurant, in []Item) ([]Item, float64, error) {
	items := make([]Item, 0, len(in))
	var total float64
	for i, item := range in {
		if menuItem, ok := rest.FindItem(item.ItemID); ok {
			item.Name = menuItem.Name
			item.Price = menuItem.Price
		}
		if item.Price < 0 {
			return nil, 0, fmt.Errorf("%w: item %d has a negative price", ErrInvalidArgument, i)
		}
		if item.Quantity < 0 {
			return nil, 0, fmt.Errorf("%w: item %d has a negative quantity", ErrInvalidArgument, i)
		}

		lineTotal := roundCents(item.Price * float64(item.Quantity))
		if !sameAmount(lineTotal, item.Total) {
			log.Warnw("order line total mismatch", "item", item.Name, "submitted", item.Total, "computed", lineTotal)
		}
		item.Total = lineTotal
		total += lineTotal
		items = append(items, item)
	}
	return items, roundCents(total), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	ord, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return Order{}, storageErr("get order", err)
	}
	return ord, nil
}

// GetForRestaurant resolves orderID only if it belongs to restaurantID.
func (s *Service) GetForRestaurant(ctx context.Context, restaurantID, orderID string) (Order, error) {
	ord, err := s.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.RestaurantID != restaurantID {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

// UpdateStatus overwrites the status; any known status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, orderID, rawStatus string) (Order, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return Order{}, err
	}

	ord, err := s.repo.UpdateStatus(ctx, orderID, status, s.now().UTC())
	if err != nil {
		return Order{}, storageErr("update status", err)
	}
	return ord, nil
}

func (s *Service) ListForRestaurant(ctx context.Context, restaurantID string, statuses []Status) ([]Order, error) {
	orders, err := s.repo.ListByRestaurant(ctx, restaurantID, statuses)
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	return orders, nil
}

func (s *Service) Notifications(ctx context.Context, restaurantID string) ([]Notification, error) {
	orders, err := s.ListForRestaurant(ctx, restaurantID, nil)
	if err != nil {
		return nil, err
	}

	feed := make([]Notification, 0, len(orders))
	for _, ord := range orders {
		feed = append(feed, NewNotification(ord))
	}
	return feed, nil
}

func (s *Service) CleanupRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	n, err := s.repo.DeleteByRestaurant(ctx, restaurantID)
	if err != nil {
		return 0, storageErr("delete restaurant orders", err)
	}
	return n, nil
}

// CleanupOlderThan deletes every order created more than days ago. Zero
// means DefaultRetentionDays.
func (s *Service) CleanupOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: days must not be negative", ErrInvalidArgument)
	}
	if days == 0 {
		days = DefaultRetentionDays
	}
	if days > MaxRetentionDays {
		return 0, fmt.Errorf("%w: days must not exceed %d", ErrInvalidArgument, MaxRetentionDays)
	}

	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -days)
	if !cutoff.Before(now) {
		return 0, fmt.Errorf("%w: cutoff %s is not in the past", ErrInvalidArgument, cutoff.Format(time.RFC3339))
	}
	n, err := s.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, storageErr("delete old orders", err)
	}
	return n, nil
}

func storageErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
