package rbtree

import "github.com/cockroachdb/errors"

// InsertUnique adds v unless an element with an equivalent key exists.
// It returns the cursor to the new or the existing element and whether
// v was inserted.
func (t *Tree[K, V]) InsertUnique(v V) (Cursor[K, V], bool, error) {
	k := t.keyOf(v)
	y := t.header
	x := t.root()
	goLeft := true
	for x != none {
		y = x
		goLeft = t.less(k, t.key(x))
		if goLeft {
			x = t.left(x)
		} else {
			x = t.right(x)
		}
	}

	// j is the greatest element not greater than k, if any
	j := y
	if goLeft {
		if j == t.leftmost() {
			return t.insertAt(x, y, v)
		}
		j = t.predecessor(j)
	}
	if t.less(t.key(j), k) {
		return t.insertAt(x, y, v)
	}
	return Cursor[K, V]{t: t, n: j}, false, nil
}

// InsertEqual always adds v. Equivalent keys stay contiguous; v lands
// after the ones already present.
func (t *Tree[K, V]) InsertEqual(v V) (Cursor[K, V], error) {
	k := t.keyOf(v)
	y := t.header
	x := t.root()
	for x != none {
		y = x
		if t.less(k, t.key(x)) {
			x = t.left(x)
		} else {
			x = t.right(x)
		}
	}
	c, _, err := t.insertAt(x, y, v)
	return c, err
}

// InsertUniqueHint is InsertUnique with a position hint. The hint is
// used only when v sorts strictly between hint's predecessor and hint;
// otherwise it falls back to a full descent.
func (t *Tree[K, V]) InsertUniqueHint(hint Cursor[K, V], v V) (Cursor[K, V], bool, error) {
	if t.count > 0 && hint.t == t {
		k := t.keyOf(v)
		switch {
		case hint.n == t.leftmost():
			if t.less(k, t.key(hint.n)) {
				return t.insertAt(hint.n, hint.n, v)
			}
		case hint.n == t.header:
			if max := t.rightmost(); t.less(t.key(max), k) {
				return t.insertAt(none, max, v)
			}
		default:
			before := t.predecessor(hint.n)
			if t.less(t.key(before), k) && t.less(k, t.key(hint.n)) {
				return t.insertBetween(before, hint.n, v)
			}
		}
	}
	return t.InsertUnique(v)
}

// InsertEqualHint is InsertEqual with a position hint. The hint is used
// only when v sorts between hint's predecessor and hint, ties allowed.
func (t *Tree[K, V]) InsertEqualHint(hint Cursor[K, V], v V) (Cursor[K, V], error) {
	if t.count > 0 && hint.t == t {
		k := t.keyOf(v)
		switch {
		case hint.n == t.leftmost():
			if !t.less(t.key(hint.n), k) {
				c, _, err := t.insertAt(hint.n, hint.n, v)
				return c, err
			}
		case hint.n == t.header:
			if max := t.rightmost(); !t.less(k, t.key(max)) {
				c, _, err := t.insertAt(none, max, v)
				return c, err
			}
		default:
			before := t.predecessor(hint.n)
			if !t.less(k, t.key(before)) && !t.less(t.key(hint.n), k) {
				c, _, err := t.insertBetween(before, hint.n, v)
				return c, err
			}
		}
	}
	return t.InsertEqual(v)
}

// insertBetween links v between adjacent nodes before and after. One of
// the two always has a free slot on the facing side.
func (t *Tree[K, V]) insertBetween(before, after int32, v V) (Cursor[K, V], bool, error) {
	if t.right(before) == none {
		return t.insertAt(none, before, v)
	}
	return t.insertAt(after, after, v)
}

// insertAt links v as a child of y. A non-absent x, an empty tree, or a
// key ordering before y's makes it the left child.
func (t *Tree[K, V]) insertAt(x, y int32, v V) (Cursor[K, V], bool, error) {
	toLeft := y == t.header || x != none || t.less(t.keyOf(v), t.key(y))

	z, err := t.alloc.Obtain()
	if err != nil {
		return t.End(), false, errors.Mark(errors.Wrap(err, "rbtree: insert"), ErrAllocation)
	}
	zn := t.nd(z)
	zn.value = v
	zn.color = red
	zn.parent = y
	zn.left = none
	zn.right = none

	if toLeft {
		// for the header this also sets leftmost
		t.nd(y).left = z
		if y == t.header {
			t.setRoot(z)
			t.setRightmost(z)
		} else if y == t.leftmost() {
			t.setLeftmost(z)
		}
	} else {
		t.nd(y).right = z
		if y == t.rightmost() {
			t.setRightmost(z)
		}
	}

	t.rebalanceInsert(z)
	t.count++
	return Cursor[K, V]{t: t, n: z}, true, nil
}

func (t *Tree[K, V]) rebalanceInsert(z int32) {
	for z != t.root() && t.colorOf(t.parent(z)) == red {
		p := t.parent(z)
		g := t.parent(p)
		if p == t.left(g) {
			u := t.right(g)
			if t.colorOf(u) == red {
				t.setColor(p, black)
				t.setColor(u, black)
				t.setColor(g, red)
				z = g
				continue
			}
			if z == t.right(p) {
				z = p
				t.rotateLeft(z)
				p = t.parent(z)
			}
			t.setColor(p, black)
			t.setColor(g, red)
			t.rotateRight(g)
		} else {
			u := t.left(g)
			if t.colorOf(u) == red {
				t.setColor(p, black)
				t.setColor(u, black)
				t.setColor(g, red)
				z = g
				continue
			}
			if z == t.left(p) {
				z = p
				t.rotateRight(z)
				p = t.parent(z)
			}
			t.setColor(p, black)
			t.setColor(g, red)
			t.rotateLeft(g)
		}
	}
	t.setColor(t.root(), black)
}
