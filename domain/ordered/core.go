package ordered

import (
	"cmp"

	"rbkv/domain/rbtree"
)

type Option = rbtree.Option

// WithLimit caps the number of elements; inserts past it fail with
// rbtree.ErrAllocation.
func WithLimit(n int) Option {
	return rbtree.WithNodeLimit(n)
}

func identity[K any](k K) K { return k }

func lessOf[K cmp.Ordered]() func(a, b K) bool {
	return cmp.Less[K]
}

// core holds the operations every container shares.
type core[K, V any] struct {
	t *rbtree.Tree[K, V]
}

func (c core[K, V]) Len() int    { return c.t.Len() }
func (c core[K, V]) Empty() bool { return c.t.Empty() }
func (c core[K, V]) Clear()      { c.t.Clear() }

func (c core[K, V]) Begin() rbtree.Cursor[K, V] { return c.t.Begin() }
func (c core[K, V]) End() rbtree.Cursor[K, V]   { return c.t.End() }
func (c core[K, V]) Last() rbtree.Cursor[K, V]  { return c.t.Last() }

func (c core[K, V]) Find(k K) rbtree.Cursor[K, V]       { return c.t.Find(k) }
func (c core[K, V]) LowerBound(k K) rbtree.Cursor[K, V] { return c.t.LowerBound(k) }
func (c core[K, V]) UpperBound(k K) rbtree.Cursor[K, V] { return c.t.UpperBound(k) }
func (c core[K, V]) Contains(k K) bool                  { return c.t.Contains(k) }

func (c core[K, V]) EqualRange(k K) (rbtree.Cursor[K, V], rbtree.Cursor[K, V]) {
	return c.t.EqualRange(k)
}

// Erase removes the element under cur and returns its successor.
func (c core[K, V]) Erase(cur rbtree.Cursor[K, V]) rbtree.Cursor[K, V] {
	return c.t.Erase(cur)
}

// Validate checks the underlying tree invariants.
func (c core[K, V]) Validate() error { return c.t.Validate() }

// scan visits elements with keys in [from, to).
func (c core[K, V]) scan(from, to K, fn func(V) bool) {
	for cur := c.t.LowerBound(from); !cur.IsEnd() && c.t.Less(cur.Key(), to); cur = cur.Next() {
		if !fn(cur.Value()) {
			return
		}
	}
}

func (c core[K, V]) first() (V, bool) {
	if c.t.Empty() {
		var zero V
		return zero, false
	}
	return c.t.Begin().Value(), true
}

func (c core[K, V]) last() (V, bool) {
	if c.t.Empty() {
		var zero V
		return zero, false
	}
	return c.t.Last().Value(), true
}

// sameKey reports key equivalence under the tree order.
func (c core[K, V]) sameKey(a, b K) bool {
	return !c.t.Less(a, b) && !c.t.Less(b, a)
}

func (c core[K, V]) compareKeys(a, b K) int {
	switch {
	case c.t.Less(a, b):
		return -1
	case c.t.Less(b, a):
		return 1
	}
	return 0
}

// equal walks both trees in order and reports whether they have the
// same length and eq holds pairwise.
func (c core[K, V]) equal(o core[K, V], eq func(a, b V) bool) bool {
	if c.t.Len() != o.t.Len() {
		return false
	}
	for x, y := c.t.Begin(), o.t.Begin(); !x.IsEnd(); x, y = x.Next(), y.Next() {
		if !eq(x.Value(), y.Value()) {
			return false
		}
	}
	return true
}

// compare orders c and o lexicographically by cmp; a proper prefix
// sorts first.
func (c core[K, V]) compare(o core[K, V], cmp func(a, b V) int) int {
	x, y := c.t.Begin(), o.t.Begin()
	for ; !x.IsEnd() && !y.IsEnd(); x, y = x.Next(), y.Next() {
		if r := cmp(x.Value(), y.Value()); r != 0 {
			return r
		}
	}
	switch {
	case !x.IsEnd():
		return 1
	case !y.IsEnd():
		return -1
	}
	return 0
}
