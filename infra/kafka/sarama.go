package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/cockroachdb/errors"
)

// SaramaProducer writes messages with a sarama sync producer.
type SaramaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig returns the producer settings used for change events.
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

func NewSaramaProducer(brokers []string, topic string) (*SaramaProducer, error) {
	p, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, errors.Wrap(err, "kafka: sarama producer")
	}
	return NewSaramaProducerFrom(p, topic), nil
}

// NewSaramaProducerFrom wraps an existing sync producer.
func NewSaramaProducerFrom(p sarama.SyncProducer, topic string) *SaramaProducer {
	return &SaramaProducer{producer: p, topic: topic}
}

// Send blocks until the broker acknowledges the message. The context
// is checked only before sending.
func (p *SaramaProducer) Send(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	return errors.Wrap(err, "kafka: sarama send")
}

func (p *SaramaProducer) Close() error {
	return p.producer.Close()
}
