package order

import "time"

// Notification is the flattened view of an order shown on the restaurant
// dashboard. It is derived on every poll and never stored.
type Notification struct {
	OrderID        string             `json:"orderId"`
	CustomerName   string             `json:"customerName"`
	CustomerMobile string             `json:"customerMobile"`
	Table          string             `json:"table"`
	Items          []NotificationItem `json:"items"`
	TotalPrice     float64            `json:"totalPrice"`
	Status         Status             `json:"status"`
	OrderTime      time.Time          `json:"orderTime"`
}

type NotificationItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

func NewNotification(ord Order) Notification {
	items := make([]NotificationItem, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, NotificationItem{Name: item.Name, Quantity: item.Quantity, Total: item.Total})
	}

	return Notification{
		OrderID:        ord.OrderID,
		CustomerName:   ord.Customer.Name,
		CustomerMobile: ord.Customer.Mobile,
		Table:          ord.Customer.Table,
		Items:          items,
		TotalPrice:     ord.TotalPrice,
		Status:         ord.Status,
		OrderTime:      ord.OrderTime,
	}
}
