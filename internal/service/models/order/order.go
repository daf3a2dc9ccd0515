package order

import (
	"time"

	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

// Order represents a customer purchase in the system.
type Order struct {
	ID        int64                 `json:"id"`
	Customer  string                `json:"customer"`
	Date      Date                  `json:"date"`
	Total     float64               `json:"total"`
	Status    Status                `json:"status"`
	Items     []orderitem.OrderItem `json:"items,omitempty"`
	CreatedAt time.Time             `json:"-"`
	UpdatedAt time.Time             `json:"-"`
}
