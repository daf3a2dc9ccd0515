package postgresrepo

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/orderstore/order-svc/internal/service/models/outbox"
)

func newMockRepo(t *testing.T) (*OutboxRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewOutboxRepository(mock), mock
}

func TestInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO outbox").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), outbox.Message{
		QueueName:   "oms.order.audit",
		RoutingKey:  "oms.order.audit",
		Payload:     []byte(`{"action":"order.created"}`),
		ContentType: "application/json",
		MaxRetries:  10,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPendingMessages(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()

	mock.ExpectQuery("SELECT id, queue_name, exchange_name, routing_key, payload, content_type, retry_count, max_retries, last_error, created_at, updated_at, next_retry_at FROM outbox").
		WillReturnRows(pgxmock.
			NewRows([]string{
				"id", "queue_name", "exchange_name", "routing_key", "payload",
				"content_type", "retry_count", "max_retries", "last_error",
				"created_at", "updated_at", "next_retry_at",
			}).
			AddRow(
				int64(1),
				"oms.order.audit",
				"",
				"oms.order.audit",
				[]byte(`{}`),
				"application/json",
				0,
				10,
				"",
				now,
				now,
				now,
			))

	got, err := repo.GetPendingMessages(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "oms.order.audit", got[0].RoutingKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM outbox").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRetry(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE outbox").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRetry(context.Background(), 1, 2, "dial error", time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
