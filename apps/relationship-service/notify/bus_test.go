package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-graph/apps/relationship-service/model"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(model.EventRequestCreated, 1, 2).WithRequestID(9)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, model.EventRequestCreated, e.Type)
	assert.Equal(t, int64(1), e.ActorID)
	assert.Equal(t, int64(2), e.TargetID)
	assert.Equal(t, int64(9), e.RequestID)
	assert.False(t, e.OccurredAt.IsZero())

	// Events without a request id omit the field on the wire.
	raw, err := json.Marshal(NewEvent(model.EventBlockCreated, 1, 2))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "request_id")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, NewEvent(model.EventFollowerCreated, 1, 2)))
	require.NoError(t, r.Publish(ctx, NewEvent(model.EventFollowerRemoved, 1, 2)))

	assert.Equal(t, []string{model.EventFollowerCreated, model.EventFollowerRemoved}, r.Types())

	r.Reset()
	assert.Empty(t, r.Events())
}
