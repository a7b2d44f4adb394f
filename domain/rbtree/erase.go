package rbtree

// Erase removes the element under c and returns a cursor to its
// successor. c must not be End. Only cursors to the erased element are
// invalidated.
func (t *Tree[K, V]) Erase(c Cursor[K, V]) Cursor[K, V] {
	next := t.successor(c.n)
	z := t.unlink(c.n)
	t.alloc.Release(z)
	t.count--
	return Cursor[K, V]{t: t, n: next}
}

// EraseKey removes every element with key equivalent to k and returns
// how many were removed.
func (t *Tree[K, V]) EraseKey(k K) int {
	first, last := t.EqualRange(k)
	n := 0
	for c := first; !c.Equal(last); n++ {
		c = t.Erase(c)
	}
	return n
}

// EraseRange removes [first, last) and returns last.
func (t *Tree[K, V]) EraseRange(first, last Cursor[K, V]) Cursor[K, V] {
	if first.n == t.leftmost() && last.n == t.header {
		t.Clear()
		return t.End()
	}
	for !first.Equal(last) {
		first = t.Erase(first)
	}
	return last
}

// unlink detaches z from the tree, restores the color invariant and
// returns the slot that is now free. When z has two children its
// successor is spliced into z's structural position first, so the
// freed slot is always z itself and no value moves between nodes.
func (t *Tree[K, V]) unlink(z int32) int32 {
	y := z
	var x, xParent int32

	switch {
	case t.left(y) == none:
		x = t.right(y)
	case t.right(y) == none:
		x = t.left(y)
	default:
		y = t.minimum(t.right(y))
		x = t.right(y)
	}

	if y != z {
		// y takes z's place, z ends up holding y's old color
		zl := t.left(z)
		t.nd(zl).parent = y
		t.nd(y).left = zl
		if y != t.right(z) {
			xParent = t.parent(y)
			if x != none {
				t.nd(x).parent = xParent
			}
			// y is the leftmost node of z's right subtree
			t.nd(xParent).left = x
			zr := t.right(z)
			t.nd(y).right = zr
			t.nd(zr).parent = y
		} else {
			xParent = y
		}
		t.replaceChild(z, y)
		t.nd(y).parent = t.parent(z)

		yc := t.nd(y).color
		t.nd(y).color = t.nd(z).color
		t.nd(z).color = yc
	} else {
		xParent = t.parent(z)
		if x != none {
			t.nd(x).parent = xParent
		}
		t.replaceChild(z, x)

		if t.leftmost() == z {
			if t.right(z) == none {
				// the header when z was the root
				t.setLeftmost(xParent)
			} else {
				t.setLeftmost(t.minimum(x))
			}
		}
		if t.rightmost() == z {
			if t.left(z) == none {
				t.setRightmost(xParent)
			} else {
				t.setRightmost(t.maximum(x))
			}
		}
	}

	if t.nd(z).color == black {
		t.rebalanceErase(x, xParent)
	}
	return z
}

// replaceChild points old's parent (or the header root link) at n.
func (t *Tree[K, V]) replaceChild(old, n int32) {
	if old == t.root() {
		t.setRoot(n)
		return
	}
	p := t.nd(t.parent(old))
	if p.left == old {
		p.left = n
	} else {
		p.right = n
	}
}

// rebalanceErase pushes the missing black at x up the tree until it is
// absorbed. x may be absent, in which case xParent locates it.
func (t *Tree[K, V]) rebalanceErase(x, xParent int32) {
	for x != t.root() && t.colorOf(x) == black {
		if x == t.left(xParent) {
			w := t.right(xParent)
			if t.colorOf(w) == red {
				t.setColor(w, black)
				t.setColor(xParent, red)
				t.rotateLeft(xParent)
				w = t.right(xParent)
			}
			if t.colorOf(t.left(w)) == black && t.colorOf(t.right(w)) == black {
				t.setColor(w, red)
				x = xParent
				xParent = t.parent(xParent)
				continue
			}
			if t.colorOf(t.right(w)) == black {
				t.setColor(t.left(w), black)
				t.setColor(w, red)
				t.rotateRight(w)
				w = t.right(xParent)
			}
			t.setColor(w, t.colorOf(xParent))
			t.setColor(xParent, black)
			if r := t.right(w); r != none {
				t.setColor(r, black)
			}
			t.rotateLeft(xParent)
			break
		}

		w := t.left(xParent)
		if t.colorOf(w) == red {
			t.setColor(w, black)
			t.setColor(xParent, red)
			t.rotateRight(xParent)
			w = t.left(xParent)
		}
		if t.colorOf(t.right(w)) == black && t.colorOf(t.left(w)) == black {
			t.setColor(w, red)
			x = xParent
			xParent = t.parent(xParent)
			continue
		}
		if t.colorOf(t.left(w)) == black {
			t.setColor(t.right(w), black)
			t.setColor(w, red)
			t.rotateLeft(w)
			w = t.left(xParent)
		}
		t.setColor(w, t.colorOf(xParent))
		t.setColor(xParent, black)
		if l := t.left(w); l != none {
			t.setColor(l, black)
		}
		t.rotateRight(xParent)
		break
	}
	if x != none {
		t.setColor(x, black)
	}
}
