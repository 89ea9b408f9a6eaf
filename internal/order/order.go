package order

import "time"

// Order is one customer checkout at a restaurant. Customer and items are
// embedded snapshots; nothing here references another stored entity except
// RestaurantID.
type Order struct {
	ID             int64     `json:"id"`
	OrderID        string    `json:"orderId"`
	RestaurantID   string    `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	Customer       Customer  `json:"customer"`
	Items          []Item    `json:"items"`
	TotalPrice     float64   `json:"totalPrice"`
	Status         Status    `json:"status"`
	OrderTime      time.Time `json:"orderTime"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Customer struct {
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Table      string `json:"table"`
	CustomerID string `json:"customerId"`
}

// Item is a menu item as it was when the order was placed.
type Item struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}
