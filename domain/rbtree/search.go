package rbtree

// LowerBound returns the first element whose key is not less than k,
// or End.
func (t *Tree[K, V]) LowerBound(k K) Cursor[K, V] {
	return Cursor[K, V]{t: t, n: t.lowerBound(k)}
}

// UpperBound returns the first element whose key is greater than k,
// or End.
func (t *Tree[K, V]) UpperBound(k K) Cursor[K, V] {
	return Cursor[K, V]{t: t, n: t.upperBound(k)}
}

// Find returns the first element with key equivalent to k, or End.
func (t *Tree[K, V]) Find(k K) Cursor[K, V] {
	y := t.lowerBound(k)
	if y == t.header || t.less(k, t.key(y)) {
		return t.End()
	}
	return Cursor[K, V]{t: t, n: y}
}

func (t *Tree[K, V]) Contains(k K) bool {
	return !t.Find(k).IsEnd()
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (t *Tree[K, V]) EqualRange(k K) (Cursor[K, V], Cursor[K, V]) {
	return t.LowerBound(k), t.UpperBound(k)
}

// Count returns the number of elements with key equivalent to k. It is
// linear in that number, not in the tree size.
func (t *Tree[K, V]) Count(k K) int {
	first, last := t.EqualRange(k)
	return Distance(first, last)
}

// Distance counts the steps from first to last. last must be reachable
// from first by Next.
func Distance[K, V any](first, last Cursor[K, V]) int {
	n := 0
	for c := first; !c.Equal(last); c = c.Next() {
		n++
	}
	return n
}

func (t *Tree[K, V]) lowerBound(k K) int32 {
	y := t.header
	x := t.root()
	for x != none {
		if !t.less(t.key(x), k) {
			y = x
			x = t.left(x)
		} else {
			x = t.right(x)
		}
	}
	return y
}

func (t *Tree[K, V]) upperBound(k K) int32 {
	y := t.header
	x := t.root()
	for x != none {
		if t.less(k, t.key(x)) {
			y = x
			x = t.left(x)
		} else {
			x = t.right(x)
		}
	}
	return y
}
