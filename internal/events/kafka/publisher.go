// Package kafka publishes transfer completion events to a Kafka topic.
// Publishing is best-effort: the transfer outcome never depends on it.
package kafka

import (
	"context"
	"encoding/json"
	"io"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"

	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/usecase"
)

// DefaultTopic is the topic transfer events are written to.
const DefaultTopic = "transfer_completed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher implements usecase.EventPublisher on a Kafka writer.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a Publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func newPublisherWithWriter(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	if c, ok := p.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// PublishTransferCompleted writes one event, assigning it a ULID if the
// caller did not.
func (p *Publisher) PublishTransferCompleted(ctx context.Context, event *domain.TransferCompletedEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.Make().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	})
}

var _ usecase.EventPublisher = (*Publisher)(nil)
