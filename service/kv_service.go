package service

import (
	"bytes"
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"rbkv/domain/ordered"
	"rbkv/infra/logutil"
	"rbkv/infra/sequence"
	"rbkv/snapshot"
)

type Options struct {
	// MaxEntries bounds the number of keys; 0 means unbounded.
	MaxEntries int
	// OutboxCapacity bounds the number of unacknowledged events; 0 means
	// unbounded.
	OutboxCapacity int
}

// KVService owns the key space and its change outbox. All methods are
// safe for concurrent use.
type KVService struct {
	mu     sync.RWMutex
	data   *ordered.Map[string, []byte]
	outbox *ordered.Map[uint64, Event]
	seq    *sequence.Sequencer

	metrics *Metrics
	log     *zap.Logger
}

// New creates an empty service. A nil metrics registers nothing; a nil
// logger discards output.
func New(opts Options, metrics *Metrics, log *zap.Logger) *KVService {
	var dataOpts []ordered.Option
	if opts.MaxEntries > 0 {
		dataOpts = append(dataOpts, ordered.WithLimit(opts.MaxEntries))
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &KVService{
		data:    ordered.NewMap[string, []byte](dataOpts...),
		outbox:  ordered.NewMap[uint64, Event](ordered.WithLimit(opts.OutboxCapacity)),
		seq:     sequence.New(0),
		metrics: metrics,
		log:     logutil.OrNop(log),
	}
}

// -------------------- Commands --------------------

// Put stores value under key and returns the revision of the write and
// whether key was new. On failure nothing changes.
func (s *KVService) Put(key string, value []byte) (uint64, bool, error) {
	s.metrics.ops.WithLabelValues("put").Inc()
	if key == "" {
		return 0, false, ErrEmptyKey
	}
	value = bytes.Clone(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	rev := s.seq.Peek()
	if err := s.reserve(Event{Seq: rev, Type: EventPut, Key: key, Value: value}); err != nil {
		return 0, false, err
	}
	created, err := s.data.Set(key, value)
	if err != nil {
		s.outbox.Delete(rev)
		s.metrics.allocFailures.Inc()
		s.log.Warn("put rejected", zap.String("key", key), zap.Int("entries", s.data.Len()), zap.Error(err))
		return 0, false, errors.Wrapf(err, "service: put %q", key)
	}
	s.seq.Next()
	s.updateGauges()
	return rev, created, nil
}

// Delete removes key. It returns the revision of the delete and whether
// key existed; deleting an absent key issues no revision.
func (s *KVService) Delete(key string) (uint64, bool, error) {
	s.metrics.ops.WithLabelValues("delete").Inc()
	if key == "" {
		return 0, false, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.data.Contains(key) {
		return s.seq.Current(), false, nil
	}
	rev := s.seq.Peek()
	if err := s.reserve(Event{Seq: rev, Type: EventDelete, Key: key}); err != nil {
		return 0, false, err
	}
	s.data.Delete(key)
	s.seq.Next()
	s.updateGauges()
	return rev, true, nil
}

// reserve queues ev ahead of the mutation it describes.
func (s *KVService) reserve(ev Event) error {
	if _, err := s.outbox.Insert(ev.Seq, ev); err != nil {
		s.metrics.allocFailures.Inc()
		s.log.Warn("outbox full", zap.Uint64("seq", ev.Seq), zap.Int("pending", s.outbox.Len()))
		return errors.Mark(errors.Wrapf(err, "service: queue %s %q", ev.Type, ev.Key), ErrOutboxFull)
	}
	return nil
}

func (s *KVService) updateGauges() {
	s.metrics.entries.Set(float64(s.data.Len()))
	s.metrics.pending.Set(float64(s.outbox.Len()))
}

// -------------------- Queries --------------------

// Get returns a copy of the value stored under key.
func (s *KVService) Get(key string) ([]byte, error) {
	s.metrics.ops.WithLabelValues("get").Inc()
	s.mu.RLock()
	v, ok := s.data.Get(key)
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "get %q", key)
	}
	return bytes.Clone(v), nil
}

// Range returns at most limit entries with keys in [from, to). An empty
// to is unbounded; a non-positive limit returns everything.
func (s *KVService) Range(from, to string, limit int) []ordered.Entry[string, []byte] {
	s.metrics.ops.WithLabelValues("range").Inc()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.Collect(s.data, from, to, limit)
}

func (s *KVService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}

// Revision returns the revision of the last committed mutation.
func (s *KVService) Revision() uint64 {
	return s.seq.Current()
}

// Snapshot returns an immutable view of the current key space.
func (s *KVService) Snapshot() (*snapshot.View, error) {
	s.metrics.ops.WithLabelValues("snapshot").Inc()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.Take(s.seq.Current(), s.data)
}

// -------------------- Outbox --------------------

// Pending returns up to limit queued events in revision order.
func (s *KVService) Pending(limit int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	s.outbox.Ascend(func(_ uint64, ev Event) bool {
		out = append(out, ev)
		return limit <= 0 || len(out) < limit
	})
	return out
}

// Ack drops queued events with revisions up to and including upTo and
// returns how many were dropped.
func (s *KVService) Ack(upTo uint64) int {
	s.metrics.ops.WithLabelValues("ack").Inc()
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if upTo == math.MaxUint64 {
		n = s.outbox.Len()
		s.outbox.Clear()
	} else {
		n = s.outbox.DeleteRange(0, upTo+1)
	}
	s.updateGauges()
	return n
}
