package rbtree

// Cursor is a bidirectional position in a Tree. The zero Cursor is not
// usable. A cursor stays valid until the element it points at is
// erased; erasing other elements does not affect it. Clear, CopyFrom
// and Swap invalidate every cursor of the trees involved.
type Cursor[K, V any] struct {
	t *Tree[K, V]
	n int32
}

// IsEnd reports whether c is the past-the-end position.
func (c Cursor[K, V]) IsEnd() bool {
	return c.n == c.t.header
}

func (c Cursor[K, V]) Equal(o Cursor[K, V]) bool {
	return c.t == o.t && c.n == o.n
}

// Value returns the element under c. At End the result is the zero V.
func (c Cursor[K, V]) Value() V {
	return c.t.nd(c.n).value
}

// Key returns the projected key of the element under c.
// Calling it at End is undefined.
func (c Cursor[K, V]) Key() K {
	return c.t.key(c.n)
}

// Replace overwrites the element under c in place. v must project to a
// key equivalent to the current one or the tree order breaks.
func (c Cursor[K, V]) Replace(v V) {
	c.t.nd(c.n).value = v
}

// Next moves to the in-order successor. The maximum steps onto End;
// End stays at End.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	c.n = c.t.successor(c.n)
	return c
}

// Prev moves to the in-order predecessor. End steps onto the maximum;
// the minimum steps onto End.
func (c Cursor[K, V]) Prev() Cursor[K, V] {
	c.n = c.t.predecessor(c.n)
	return c
}

func (t *Tree[K, V]) successor(x int32) int32 {
	if x == t.header {
		return x
	}
	if r := t.right(x); r != none {
		return t.minimum(r)
	}
	// the root's parent is the header, so climbing off the maximum
	// stops there
	p := t.parent(x)
	for p != t.header && x == t.right(p) {
		x = p
		p = t.parent(p)
	}
	return p
}

func (t *Tree[K, V]) predecessor(x int32) int32 {
	if x == t.header {
		return t.rightmost()
	}
	if l := t.left(x); l != none {
		return t.maximum(l)
	}
	p := t.parent(x)
	for p != t.header && x == t.left(p) {
		x = p
		p = t.parent(p)
	}
	return p
}
