package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/orderstore/order-svc/internal/dal/interfaces/iorderitemrepo"
	"github.com/orderstore/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/orderstore/order-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/orderstore/order-svc/internal/dal/postgres"
	"github.com/orderstore/order-svc/internal/dal/uow"
	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/audit"
	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

// unitOfWork groups repository access; Begin promotes it to a transaction.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.PostgresRepository
	OrderItemRepository() iorderitemrepo.PostgresRepository
	OutboxRepository() ioutboxrepo.Repository
}

// OrderService is a service for managing orders and their items.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory overrides the unit of work source. Used by tests to
// run the service against fake repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// CreateOrder inserts a new order together with its items and records an
// audit event, all in one transaction. The generated id is assigned by the
// store; the status defaults to Open when the caller supplies none.
func (s *OrderService) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	if o.Customer == "" {
		return order.Order{}, errs.NewValidation("missing customer")
	}
	if o.Total < 0 {
		return order.Order{}, errs.NewValidation("total must not be negative")
	}
	if o.Status == "" {
		o.Status = order.StatusOpen
	} else if _, err := order.ParseStatus(o.Status.String()); err != nil {
		return order.Order{}, errs.NewValidation("invalid status %q", o.Status)
	}

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	inserted, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		item.OrderID = inserted.ID
		item.CreatedAt = now
		item.UpdatedAt = now

		insertedItem, err := work.OrderItemRepository().Insert(ctx, item)
		if err != nil {
			return order.Order{}, err
		}
		items = append(items, insertedItem)
	}
	inserted.Items = items

	if err := s.recordAudit(ctx, work, audit.ActionOrderCreated, inserted); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return inserted, nil
}

// GetOrder retrieves a single order with its items. The order row and its
// items are fetched concurrently; both only need the id.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	work := s.newUOW()

	var (
		found order.Order
		items []orderitem.OrderItem
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return errs.ErrNotFound
		}
		found = orders[0]

		return nil
	})

	g.Go(func() error {
		var err error
		items, err = work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
			OrderIds: []int64{id},
		})

		return err
	})

	if err := g.Wait(); err != nil {
		return order.Order{}, err
	}

	found.Items = items

	return found, nil
}

// ListOrders retrieves orders matching the filter, with their items attached.
func (s *OrderService) ListOrders(
	ctx context.Context,
	model order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &model)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// UpdateOrder persists in-place changes to an existing order.
func (s *OrderService) UpdateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	if o.ID == 0 {
		return order.Order{}, errs.NewValidation("update called with empty id field")
	}

	o.UpdatedAt = time.Now()

	work := s.newUOW()

	updated, err := work.OrderRepository().Update(ctx, o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, errs.ErrNotFound
		}

		return order.Order{}, err
	}

	return updated, nil
}

// DeleteOrder removes an order and cascades to its items. Deleting an order
// that does not exist is not an error.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = work.Rollback(ctx) }()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	if err := work.OrderItemRepository().DeleteByOrderIDs(ctx, []int64{id}); err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.recordAudit(ctx, work, audit.ActionOrderDeleted, orders[0]); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// CancelOrder applies the guarded cancel transition.
func (s *OrderService) CancelOrder(ctx context.Context, id int64) (order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, errs.ErrNotFound
	}

	found := orders[0]

	newStatus, err := found.Status.Cancel()
	if err != nil {
		return order.Order{}, err
	}

	found.Status = newStatus
	found.UpdatedAt = time.Now()

	cancelled, err := work.OrderRepository().Update(ctx, found)
	if err != nil {
		return order.Order{}, err
	}

	if err := s.recordAudit(ctx, work, audit.ActionOrderCancelled, cancelled); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return cancelled, nil
}

// CreateItem adds an item to an existing order.
func (s *OrderService) CreateItem(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().
		Query(ctx, &order.QueryOrdersModel{Ids: []int64{item.OrderID}})
	if err != nil {
		return orderitem.OrderItem{}, err
	}
	if len(orders) == 0 {
		return orderitem.OrderItem{}, errs.ErrNotFound
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	return work.OrderItemRepository().Insert(ctx, item)
}

// GetItem retrieves one item of an order.
func (s *OrderService) GetItem(
	ctx context.Context,
	orderID, itemID int64,
) (orderitem.OrderItem, error) {
	work := s.newUOW()

	items, err := work.OrderItemRepository().
		Query(ctx, &orderitem.QueryOrderItemsModel{Ids: []int64{itemID}})
	if err != nil {
		return orderitem.OrderItem{}, err
	}
	if len(items) == 0 || items[0].OrderID != orderID {
		return orderitem.OrderItem{}, errs.ErrNotFound
	}

	return items[0], nil
}

// ListOrderItems retrieves every item owned by an order.
func (s *OrderService) ListOrderItems(
	ctx context.Context,
	orderID int64,
) ([]orderitem.OrderItem, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().
		Query(ctx, &order.QueryOrdersModel{Ids: []int64{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.ErrNotFound
	}

	items, err := work.OrderItemRepository().
		Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{orderID}})
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []orderitem.OrderItem{}
	}

	return items, nil
}

// UpdateItem persists in-place changes to an existing order item.
func (s *OrderService) UpdateItem(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	if item.ID == 0 {
		return orderitem.OrderItem{}, errs.NewValidation("update called with empty id field")
	}

	item.UpdatedAt = time.Now()

	work := s.newUOW()

	updated, err := work.OrderItemRepository().Update(ctx, item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orderitem.OrderItem{}, errs.ErrNotFound
		}

		return orderitem.OrderItem{}, err
	}

	return updated, nil
}

// DeleteItem removes an item. Deleting an item that does not exist is not an
// error.
func (s *OrderService) DeleteItem(ctx context.Context, itemID int64) error {
	work := s.newUOW()

	return work.OrderItemRepository().Delete(ctx, itemID)
}

func (s *OrderService) recordAudit(
	ctx context.Context,
	work unitOfWork,
	action string,
	o order.Order,
) error {
	msg, err := audit.NewOutboxMessage(audit.Event{
		Action:     action,
		OrderID:    o.ID,
		Customer:   o.Customer,
		Status:     o.Status.String(),
		OccurredAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to build audit message: %w", err)
	}

	return work.OutboxRepository().Insert(ctx, msg)
}
