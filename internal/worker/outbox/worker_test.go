package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orderstore/order-svc/internal/service/models/outbox"
)

type fakeOutboxRepo struct {
	pending []outbox.Message

	deleted []int64
	retried []int64
}

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	r.pending = append(r.pending, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.Message, error) {
	return r.pending, nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)

	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(
	_ context.Context,
	id int64,
	_ int,
	_ string,
	_ time.Time,
) error {
	r.retried = append(r.retried, id)

	return nil
}

type fakePublisher struct {
	published [][]byte
	err       error
}

func (p *fakePublisher) Publish(_, _, _ string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, body)

	return nil
}

func TestProcessMessagesPublishesAndDeletes(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []outbox.Message{
		{ID: 1, RoutingKey: "oms.order.audit", Payload: []byte(`{"a":1}`)},
		{ID: 2, RoutingKey: "oms.order.audit", Payload: []byte(`{"a":2}`)},
	}}
	pub := &fakePublisher{}

	w := NewWorker(repo, pub)
	w.ProcessMessages(context.Background())

	require.Len(t, pub.published, 2)
	require.Equal(t, []int64{1, 2}, repo.deleted)
	require.Empty(t, repo.retried)
}

func TestProcessMessagesSchedulesRetryOnFailure(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []outbox.Message{
		{ID: 1, RoutingKey: "oms.order.audit", Payload: []byte(`{}`)},
	}}
	pub := &fakePublisher{err: errors.New("broker unreachable")}

	w := NewWorker(repo, pub)
	w.ProcessMessages(context.Background())

	require.Empty(t, pub.published)
	require.Empty(t, repo.deleted)
	require.Equal(t, []int64{1}, repo.retried)
}

func TestStartStops(t *testing.T) {
	repo := &fakeOutboxRepo{}
	w := NewWorker(repo, &fakePublisher{})

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
