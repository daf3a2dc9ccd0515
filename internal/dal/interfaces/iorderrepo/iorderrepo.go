package iorderrepo

import (
	"context"

	"github.com/orderstore/order-svc/internal/service/models/order"
)

// PostgresRepository is an interface for the order postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	Update(ctx context.Context, o order.Order) (order.Order, error)
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
