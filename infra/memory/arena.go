package memory

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrExhausted is returned by Obtain when the arena limit is reached.
var ErrExhausted = errors.New("memory: arena exhausted")

// Allocator is the contract between a tree and its node storage.
// Obtain returns a fresh zeroed slot, Release gives it back.
// Pointers returned by Slot are valid until the next Obtain.
type Allocator[T any] interface {
	Obtain() (int32, error)
	Release(idx int32)
	Slot(idx int32) *T
}

// Arena is a typed slot allocator backed by a growable slice.
// Released slots are reused LIFO.
type Arena[T any] struct {
	slots []T
	free  []int32
	limit int
}

// NewArena creates an arena. limit bounds the number of live slots;
// zero means unbounded.
func NewArena[T any](limit int) *Arena[T] {
	return &Arena[T]{limit: limit}
}

func (a *Arena[T]) Obtain() (int32, error) {
	if a.limit > 0 && a.Live() >= a.limit {
		return 0, errors.Wrapf(ErrExhausted, "limit %d", a.limit)
	}
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return idx, nil
	}
	if len(a.slots) == math.MaxInt32 {
		return 0, errors.Wrap(ErrExhausted, "index space")
	}
	var zero T
	a.slots = append(a.slots, zero)
	return int32(len(a.slots) - 1), nil
}

func (a *Arena[T]) Release(idx int32) {
	var zero T
	a.slots[idx] = zero
	a.free = append(a.free, idx)
}

func (a *Arena[T]) Slot(idx int32) *T {
	return &a.slots[idx]
}

// Live returns the number of slots currently handed out.
func (a *Arena[T]) Live() int {
	return len(a.slots) - len(a.free)
}

// Cap returns the number of slots ever created.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// Limit returns the live-slot bound, zero when unbounded.
func (a *Arena[T]) Limit() int {
	return a.limit
}
