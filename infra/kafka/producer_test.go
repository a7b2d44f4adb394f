package kafka

import (
	"bytes"
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaramaProducerSend(t *testing.T) {
	mp := mocks.NewSyncProducer(t, NewSaramaConfig())
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if !bytes.Equal(val, []byte("v1")) {
			return errors.Newf("unexpected value %q", val)
		}
		return nil
	})
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaProducerFrom(mp, "changes")
	require.NoError(t, p.Send(context.Background(), []byte("k1"), []byte("v1")))

	err := p.Send(context.Background(), []byte("k2"), []byte("v2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))

	require.NoError(t, p.Close())
}

func TestSaramaProducerCancelled(t *testing.T) {
	mp := mocks.NewSyncProducer(t, NewSaramaConfig())
	p := NewSaramaProducerFrom(mp, "changes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Send(ctx, nil, []byte("v")), context.Canceled)
	require.NoError(t, p.Close())
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"b1:9092"}, "changes")
	assert.Equal(t, "changes", p.writer.Topic)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.Equal(t, "b1:9092", p.writer.Addr.String())
	require.NoError(t, p.Close())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("nats", []string{"b:1"}, "t")
	require.Error(t, err)

	s, err := Open(DriverKafkaGo, []string{"b:1"}, "t")
	require.NoError(t, err)
	assert.IsType(t, &Producer{}, s)
	require.NoError(t, s.Close())
}
