// Package broadcaster drains the service outbox to a message broker.
package broadcaster

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rbkv/infra/logutil"
	"rbkv/service"
)

// Outbox is the queue of committed events awaiting publication.
type Outbox interface {
	Pending(limit int) []service.Event
	Ack(upTo uint64) int
}

// Publisher delivers one encoded event.
type Publisher interface {
	Send(ctx context.Context, key, value []byte) error
}

type Broadcaster struct {
	source   Outbox
	pub      Publisher
	interval time.Duration
	batch    int
	log      *zap.Logger
}

func New(source Outbox, pub Publisher, interval time.Duration, batch int, log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		source:   source,
		pub:      pub,
		interval: interval,
		batch:    batch,
		log:      logutil.OrNop(log),
	}
}

// Run flushes on every tick until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started", zap.Duration("interval", b.interval), zap.Int("batch", b.batch))
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("broadcaster stopped")
			return
		case <-ticker.C:
			if _, err := b.Flush(ctx); err != nil && ctx.Err() == nil {
				b.log.Warn("broadcast interrupted, retrying next tick", zap.Error(err))
			}
		}
	}
}

// Flush publishes up to one batch of pending events in revision order.
// It stops at the first failure and acknowledges only the events that
// were published before it, so delivery is at-least-once and ordered.
func (b *Broadcaster) Flush(ctx context.Context) (int, error) {
	events := b.source.Pending(b.batch)
	var (
		sent int
		last uint64
		err  error
	)
	for _, ev := range events {
		var payload []byte
		if payload, err = EncodeEvent(ev); err != nil {
			break
		}
		if err = b.pub.Send(ctx, []byte(ev.Key), payload); err != nil {
			break
		}
		sent++
		last = ev.Seq
	}
	if sent > 0 {
		b.source.Ack(last)
		b.log.Debug("events published", zap.Int("count", sent), zap.Uint64("through", last))
	}
	return sent, err
}
