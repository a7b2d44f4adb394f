// Package sequence issues the revision numbers that stamp every
// committed write and its outbox event.
package sequence

import "sync/atomic"

// Sequencer hands out revisions. The service reads Peek under its write
// lock to key the outbox event before the mutation, and calls Next only
// once the mutation has committed, so failed writes leave no gap.
type Sequencer struct {
	last atomic.Uint64
}

// New starts after rev; the first committed write gets rev+1.
func New(rev uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(rev)
	return s
}

// Next commits and returns the next revision.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current is the revision of the last committed write.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}

// Peek is the revision the next commit will get. It only holds while
// the caller excludes other committers.
func (s *Sequencer) Peek() uint64 {
	return s.last.Load() + 1
}
