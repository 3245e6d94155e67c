package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/logger"
)

func TestHandleMessage_DispatchesByType(t *testing.T) {
	c := NewEventConsumer(logger.GetLogger())

	var created []notify.Event
	var accepted int
	c.On(model.EventRequestCreated, func(ctx context.Context, event notify.Event) {
		created = append(created, event)
	})
	c.On(model.EventRequestAccepted, func(ctx context.Context, event notify.Event) {
		accepted++
	})

	event := notify.NewEvent(model.EventRequestCreated, 1, 2).WithRequestID(9)
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, c.HandleMessage(&sarama.ConsumerMessage{
		Topic: model.DefaultEventTopic,
		Value: payload,
	}))

	require.Len(t, created, 1)
	assert.Equal(t, int64(9), created[0].RequestID)
	assert.Equal(t, int64(2), created[0].TargetID)
	assert.Zero(t, accepted)
}

func TestHandleMessage_MultipleHandlersOneType(t *testing.T) {
	c := NewEventConsumer(logger.GetLogger())

	calls := 0
	c.On(model.EventBlockCreated, func(ctx context.Context, event notify.Event) { calls++ })
	c.On(model.EventBlockCreated, func(ctx context.Context, event notify.Event) { calls++ })

	payload, err := json.Marshal(notify.NewEvent(model.EventBlockCreated, 1, 2))
	require.NoError(t, err)

	require.NoError(t, c.HandleMessage(&sarama.ConsumerMessage{Value: payload}))
	assert.Equal(t, 2, calls)
}

func TestHandleMessage_MalformedPayloadSkipped(t *testing.T) {
	c := NewEventConsumer(logger.GetLogger())

	dispatched := false
	c.On(model.EventRequestCreated, func(ctx context.Context, event notify.Event) {
		dispatched = true
	})

	// A nil error keeps the offset moving; a poison message must not wedge
	// the partition.
	require.NoError(t, c.HandleMessage(&sarama.ConsumerMessage{Value: []byte("not json")}))
	assert.False(t, dispatched)

	// Unknown event types are ignored without error.
	payload, err := json.Marshal(notify.NewEvent("unknown_type", 1, 2))
	require.NoError(t, err)
	require.NoError(t, c.HandleMessage(&sarama.ConsumerMessage{Value: payload}))
	assert.False(t, dispatched)
}
