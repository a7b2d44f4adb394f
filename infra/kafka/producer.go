// Package kafka publishes change events to Kafka. Two drivers are
// available: segmentio/kafka-go and IBM/sarama.
package kafka

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
)

// Sender is what both drivers provide.
type Sender interface {
	Send(ctx context.Context, key, value []byte) error
	Close() error
}

const (
	DriverSarama  = "sarama"
	DriverKafkaGo = "kafka-go"
)

// Open returns a sender for the named driver.
func Open(driver string, brokers []string, topic string) (Sender, error) {
	switch driver {
	case DriverKafkaGo:
		return NewProducer(brokers, topic), nil
	case DriverSarama:
		p, err := NewSaramaProducer(brokers, topic)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.Newf("kafka: unknown driver %q", driver)
	}
}

// Producer writes messages with kafka-go.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	return errors.Wrap(err, "kafka: write")
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
