// Package notify publishes relationship lifecycle events to interested
// consumers. Delivery is fire and forget: a publish failure is logged by the
// caller and never fails the operation that produced the event.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"social-graph/pkg/kafka"
)

// Event is a single relationship state change. ActorID is the user whose
// action produced the event; TargetID is the other side of the edge.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ActorID    int64     `json:"actor_id"`
	TargetID   int64     `json:"target_id"`
	RequestID  int64     `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent builds an event with a fresh id and the current time.
func NewEvent(eventType string, actorID, targetID int64) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		ActorID:    actorID,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithRequestID attaches the friendship request id the event refers to.
func (e Event) WithRequestID(id int64) Event {
	e.RequestID = id
	return e
}

// Bus publishes relationship events.
type Bus interface {
	Publish(ctx context.Context, event Event) error
}

// KafkaBus publishes events to a kafka topic, keyed by actor so one user's
// events stay ordered within a partition.
type KafkaBus struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaBus creates a bus over a kafka producer.
func NewKafkaBus(producer *kafka.Producer, topic string) *KafkaBus {
	return &KafkaBus{producer: producer, topic: topic}
}

// Publish sends the event to the configured topic.
func (b *KafkaBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %v", err)
	}
	key := []byte(strconv.FormatInt(event.ActorID, 10))
	if err := b.producer.SendMessage(b.topic, key, payload); err != nil {
		return fmt.Errorf("publish event %s: %v", event.Type, err)
	}
	return nil
}

// Recorder is an in-memory bus used by tests to assert on emitted events.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(ctx context.Context, event Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the published event types in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
