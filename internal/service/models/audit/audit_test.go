package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOutboxMessage(t *testing.T) {
	msg, err := NewOutboxMessage(Event{
		Action:     ActionOrderCancelled,
		OrderID:    7,
		Customer:   "Alice",
		Status:     "Cancelled",
		OccurredAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Equal(t, QueueName, msg.QueueName)
	require.Equal(t, QueueName, msg.RoutingKey)
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, defaultMaxRetries, msg.MaxRetries)
	require.False(t, msg.NextRetryAt.After(time.Now()))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	require.Equal(t, ActionOrderCancelled, decoded.Action)
	require.Equal(t, int64(7), decoded.OrderID)
	require.Equal(t, "Cancelled", decoded.Status)
}
