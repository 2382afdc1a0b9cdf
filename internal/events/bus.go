package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// HandlerFunc processes one message. Errors are logged and the message is
// acknowledged regardless.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// Bus is an in-process publish/subscribe bus.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewBus creates a Bus. A nil logger discards log output.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "events")
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

// Publish marshals payload to JSON and publishes it on topic. It returns
// once every subscriber has handled the message. Messages published before
// any subscriber exists are dropped.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("event_type", topic)
	msg.Metadata.Set("source", Source)
	msg.Metadata.Set("timestamp", time.Now().Format(time.RFC3339))
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.Error("Failed to publish event", "event_id", msg.UUID, "event_type", topic, "error", err)
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}
	b.logger.Debug("Published event", "event_id", msg.UUID, "event_type", topic)
	return nil
}

// PublishSessionStarted publishes ev on TopicSessionStarted.
func (b *Bus) PublishSessionStarted(ctx context.Context, ev SessionStarted) error {
	return b.Publish(ctx, TopicSessionStarted, ev)
}

// PublishResult publishes ev on TopicResultRecorded.
func (b *Bus) PublishResult(ctx context.Context, ev ResultRecorded) error {
	return b.Publish(ctx, TopicResultRecorded, ev)
}

// Handle subscribes h to topic. Messages are processed one at a time in a
// goroutine that runs until ctx is done or the bus is closed.
func (b *Bus) Handle(ctx context.Context, name, topic string, h HandlerFunc) error {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s to %s: %w", name, topic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range ch {
			if err := h(msg.Context(), msg); err != nil {
				b.logger.Warn("Event handler failed",
					"handler", name,
					"event_id", msg.UUID,
					"event_type", topic,
					"error", err)
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close stops the bus and waits for running handlers to drain.
func (b *Bus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
