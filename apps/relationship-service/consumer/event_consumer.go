package consumer

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/kafka"
	"social-graph/pkg/logger"
)

// HandlerFunc processes one relationship event.
type HandlerFunc func(ctx context.Context, event notify.Event)

// EventConsumer is the consuming side of the relationship event topic. It
// decodes events and dispatches them to per-type handlers, for example the
// notification delivery triggered when a friendship request arrives.
// Malformed payloads are logged and skipped, never retried.
type EventConsumer struct {
	consumer *kafka.Consumer
	logger   logger.Logger
	handlers map[string][]HandlerFunc
}

// NewEventConsumer creates an event consumer with no handlers registered.
func NewEventConsumer(log logger.Logger) *EventConsumer {
	return &EventConsumer{
		logger:   log,
		handlers: make(map[string][]HandlerFunc),
	}
}

// On registers a handler for one event type.
func (c *EventConsumer) On(eventType string, fn HandlerFunc) {
	c.handlers[eventType] = append(c.handlers[eventType], fn)
}

// Start joins the consumer group and consumes until ctx is canceled.
// Handlers must be registered before Start.
func (c *EventConsumer) Start(ctx context.Context, brokers []string, groupID, topic string) error {
	cfg := kafka.KafkaConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topics:  []string{topic},
	}

	consumer, err := kafka.InitConsumer(cfg, c)
	if err != nil {
		return err
	}

	c.consumer = consumer
	c.logger.Info(ctx, "Relationship event consumer started",
		logger.F("topic", topic),
		logger.F("groupID", groupID))

	return c.consumer.StartConsuming(ctx)
}

// HandleMessage implements kafka.ConsumerHandler.
func (c *EventConsumer) HandleMessage(msg *sarama.ConsumerMessage) error {
	ctx := context.Background()

	var event notify.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn(ctx, "Failed to decode relationship event",
			logger.F("topic", msg.Topic),
			logger.F("offset", msg.Offset),
			logger.F("error", err.Error()))
		return nil
	}

	for _, fn := range c.handlers[event.Type] {
		fn(ctx, event)
	}
	return nil
}
