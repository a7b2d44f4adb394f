package rbtree

import (
	"iter"

	"github.com/cockroachdb/errors"

	"rbkv/infra/memory"
)

// ErrAllocation is returned when storage for a new node cannot be
// obtained. The tree is left unchanged.
var ErrAllocation = errors.New("rbtree: node allocation failed")

// Tree is a red-black tree of values V ordered by the key K projected
// out of each value. It is single-writer: callers sharing a Tree
// across goroutines must serialize every access themselves.
type Tree[K, V any] struct {
	alloc  memory.Allocator[node[V]]
	header int32
	count  int
	limit  int

	keyOf func(V) K
	less  func(a, b K) bool
}

type Option func(*options)

type options struct {
	limit int
}

// WithNodeLimit caps the number of elements the tree may hold.
// Inserts past the cap fail with ErrAllocation.
func WithNodeLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// New creates an empty tree. keyOf must be pure; less must be a strict
// weak ordering that stays fixed for the lifetime of the tree.
func New[K, V any](keyOf func(V) K, less func(a, b K) bool, opts ...Option) *Tree[K, V] {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	arenaLimit := 0
	if o.limit > 0 {
		// one slot for the header
		arenaLimit = o.limit + 1
	}
	t := &Tree[K, V]{
		alloc: memory.NewArena[node[V]](arenaLimit),
		limit: o.limit,
		keyOf: keyOf,
		less:  less,
	}
	h, err := t.alloc.Obtain()
	if err != nil {
		panic(errors.Wrap(err, "rbtree: header allocation"))
	}
	t.header = h
	t.resetHeader()
	return t
}

func (t *Tree[K, V]) Len() int    { return t.count }
func (t *Tree[K, V]) Empty() bool { return t.count == 0 }

// Limit returns the element cap, zero when unbounded.
func (t *Tree[K, V]) Limit() int { return t.limit }

// KeyOf projects the ordering key out of v.
func (t *Tree[K, V]) KeyOf(v V) K { return t.keyOf(v) }

// Less reports whether a orders before b.
func (t *Tree[K, V]) Less(a, b K) bool { return t.less(a, b) }

// Begin points at the minimum element, or End when empty.
func (t *Tree[K, V]) Begin() Cursor[K, V] {
	return Cursor[K, V]{t: t, n: t.leftmost()}
}

// End is the past-the-end position (the header).
func (t *Tree[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{t: t, n: t.header}
}

// Last points at the maximum element, or End when empty.
func (t *Tree[K, V]) Last() Cursor[K, V] {
	return Cursor[K, V]{t: t, n: t.rightmost()}
}

// Clear destroys every element. The header survives.
func (t *Tree[K, V]) Clear() {
	if t.count == 0 {
		return
	}
	t.releaseSubtree(t.root())
	t.resetHeader()
	t.count = 0
}

// releaseSubtree frees every node under x without rebalancing.
func (t *Tree[K, V]) releaseSubtree(x int32) {
	stack := []int32{x}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == none {
			continue
		}
		stack = append(stack, t.left(n), t.right(n))
		t.alloc.Release(n)
	}
}

// Swap exchanges the contents of t and o, node limits included.
// Cursors taken from either tree before the call must not be used
// afterwards: a cursor keeps pointing at its tree value, which now holds
// the other tree's storage, so it would address unrelated slots.
func (t *Tree[K, V]) Swap(o *Tree[K, V]) {
	*t, *o = *o, *t
}

// -------------------- Traversal --------------------

// Ascend calls fn in key order until it returns false.
func (t *Tree[K, V]) Ascend(fn func(V) bool) {
	for c := t.Begin(); !c.IsEnd(); c = c.Next() {
		if !fn(c.Value()) {
			return
		}
	}
}

// Descend calls fn in reverse key order until it returns false.
func (t *Tree[K, V]) Descend(fn func(V) bool) {
	for c := t.Last(); !c.IsEnd(); c = c.Prev() {
		if !fn(c.Value()) {
			return
		}
	}
}

func (t *Tree[K, V]) All() iter.Seq[V] {
	return t.Ascend
}

func (t *Tree[K, V]) Backward() iter.Seq[V] {
	return t.Descend
}
