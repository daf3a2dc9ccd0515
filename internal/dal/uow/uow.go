package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderstore/order-svc/internal/dal/interfaces/iorderitemrepo"
	"github.com/orderstore/order-svc/internal/dal/interfaces/iorderrepo"
	"github.com/orderstore/order-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/orderstore/order-svc/internal/dal/pgerr"
	"github.com/orderstore/order-svc/internal/dal/postgres"
	orderrepo "github.com/orderstore/order-svc/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/orderstore/order-svc/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/orderstore/order-svc/internal/dal/repositories/outbox/postgres"
)

// unitOfWork groups repository access over a single connection. Until Begin
// is called the repositories run against the pool with per-statement commit
// semantics; after Begin they share one transaction.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.PostgresRepository
	orderItemRepo iorderitemrepo.PostgresRepository
	outboxRepo    ioutboxrepo.Repository
}

// NewUnitOfWork creates a unit of work bound to the given Postgres client.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		outboxRepo:    outboxrepo.NewOutboxRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.PostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.PostgresRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.Repository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return pgerr.Wrap(err)
	}

	u.tx = tx
	// Rebind the repositories onto the transaction
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
