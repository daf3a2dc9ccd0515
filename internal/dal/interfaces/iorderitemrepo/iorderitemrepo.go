package iorderitemrepo

import (
	"context"

	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

// PostgresRepository is an interface for the order item postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	Update(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
}
