package postgresrepo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/orderstore/order-svc/internal/service/models/order"
)

func newMockRepo(t *testing.T) (*PostgresOrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresOrderRepository(mock), mock
}

func TestInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	got, err := repo.Insert(context.Background(), order.Order{
		Customer: "Alice",
		Date:     order.DateOf(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		Total:    99.5,
		Status:   order.StatusOpen,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE orders").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	got, err := repo.Update(context.Background(), order.Order{
		ID:       3,
		Customer: "Bob",
		Date:     order.DateOf(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)),
		Total:    10,
		Status:   order.StatusClosed,
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE orders").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.Update(context.Background(), order.Order{
		ID:       404,
		Customer: "Bob",
		Status:   order.StatusOpen,
	})
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM orders").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	orderDate := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, customer, order_date, total, status, created_at, updated_at FROM orders").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "customer", "order_date", "total", "status", "created_at", "updated_at"}).
			AddRow(
				int64(1),
				"Alice",
				pgtype.Date{Time: orderDate, Valid: true},
				42.0,
				"Open",
				pgtype.Timestamptz{Time: now, Valid: true},
				pgtype.Timestamptz{Time: now, Valid: true},
			))

	got, err := repo.Query(context.Background(), &order.QueryOrdersModel{
		Statuses: []order.Status{order.StatusOpen},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Alice", got[0].Customer)
	require.Equal(t, order.StatusOpen, got[0].Status)
	require.Equal(t, "2026-08-03", got[0].Date.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryUnknownStatusInRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, customer, order_date, total, status, created_at, updated_at FROM orders").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "customer", "order_date", "total", "status", "created_at", "updated_at"}).
			AddRow(
				int64(1),
				"Alice",
				pgtype.Date{Time: time.Now(), Valid: true},
				42.0,
				"Bogus",
				pgtype.Timestamptz{Time: time.Now(), Valid: true},
				pgtype.Timestamptz{Time: time.Now(), Valid: true},
			))

	_, err := repo.Query(context.Background(), &order.QueryOrdersModel{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
