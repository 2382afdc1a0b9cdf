package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewKafkaPublisher creates a watermill publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (message.Publisher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}
	return publisher, nil
}

// Forwarder copies every bus event to a single external topic. The
// original bus topic travels in the "event_type" metadata.
type Forwarder struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewForwarder creates a Forwarder publishing to topic.
func NewForwarder(publisher message.Publisher, topic string, logger *slog.Logger) *Forwarder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Forwarder{publisher: publisher, topic: topic, logger: logger.With("component", "forwarder")}
}

// Attach subscribes the forwarder to every bus topic.
func (f *Forwarder) Attach(ctx context.Context, bus *Bus) error {
	for _, topic := range Topics {
		if err := bus.Handle(ctx, "forward-"+topic, topic, f.forward); err != nil {
			return err
		}
	}
	return nil
}

func (f *Forwarder) forward(_ context.Context, msg *message.Message) error {
	if err := f.publisher.Publish(f.topic, msg.Copy()); err != nil {
		return fmt.Errorf("failed to forward event: %w", err)
	}
	f.logger.Info("Forwarded event",
		"event_id", msg.UUID,
		"event_type", msg.Metadata.Get("event_type"),
		"topic", f.topic)
	return nil
}

// Close closes the external publisher.
func (f *Forwarder) Close() error {
	return f.publisher.Close()
}
