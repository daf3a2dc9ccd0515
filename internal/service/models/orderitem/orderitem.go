package orderitem

import (
	"time"
)

// OrderItem represents a line item belonging to exactly one order.
// Total is expected to equal Price * Quantity but is supplied by the caller
// and is not recomputed by the store.
type OrderItem struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
