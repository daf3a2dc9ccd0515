package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/orderstore/order-svc/internal/service/models/outbox"
)

const (
	// QueueName is the RabbitMQ queue audit events are delivered to.
	QueueName = "oms.order.audit"

	ActionOrderCreated   = "order.created"
	ActionOrderCancelled = "order.cancelled"
	ActionOrderDeleted   = "order.deleted"

	defaultMaxRetries = 10
)

// Event is the payload recorded for every order mutation.
type Event struct {
	Action     string    `json:"action"`
	OrderID    int64     `json:"order_id"`
	Customer   string    `json:"customer"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOutboxMessage wraps an audit event into an outbox message ready for
// insertion alongside the entity change.
func NewOutboxMessage(e Event) (outbox.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return outbox.Message{}, fmt.Errorf("failed to marshal audit event: %w", err)
	}

	now := time.Now()

	return outbox.Message{
		QueueName:   QueueName,
		RoutingKey:  QueueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
