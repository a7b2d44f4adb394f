package rbtree

import "github.com/cockroachdb/errors"

// ErrInvariant reports a broken tree. It indicates a bug or an
// inconsistent comparator, never a recoverable condition.
var ErrInvariant = errors.New("rbtree: invariant violated")

// Validate walks the whole tree and reports the first violated
// invariant: root color, red-red edges, black-height, parent links,
// key order, cached extremes and element count.
func (t *Tree[K, V]) Validate() error {
	h := t.nd(t.header)
	root := h.parent
	if root == none {
		if t.count != 0 {
			return errors.Wrapf(ErrInvariant, "empty tree with count %d", t.count)
		}
		if h.left != t.header || h.right != t.header {
			return errors.Wrap(ErrInvariant, "empty tree with cached extremes")
		}
		return nil
	}
	if t.parent(root) != t.header {
		return errors.Wrap(ErrInvariant, "root parent is not the header")
	}
	if t.colorOf(root) != black {
		return errors.Wrap(ErrInvariant, "red root")
	}
	if _, err := t.blackHeight(root); err != nil {
		return err
	}
	if h.left != t.minimum(root) {
		return errors.Wrap(ErrInvariant, "cached minimum is stale")
	}
	if h.right != t.maximum(root) {
		return errors.Wrap(ErrInvariant, "cached maximum is stale")
	}

	n := 0
	prev := none
	for c := t.Begin(); !c.IsEnd(); c = c.Next() {
		if prev != none && t.less(t.key(c.n), t.key(prev)) {
			return errors.Wrapf(ErrInvariant, "out of order at position %d", n)
		}
		prev = c.n
		n++
		if n > t.count {
			break
		}
	}
	if n != t.count {
		return errors.Wrapf(ErrInvariant, "count %d, reachable %d", t.count, n)
	}
	return nil
}

// blackHeight returns the number of black nodes below x on every path,
// or an error when paths disagree or a red node has a red child.
func (t *Tree[K, V]) blackHeight(x int32) (int, error) {
	if x == none {
		return 0, nil
	}
	l, r := t.left(x), t.right(x)
	for _, c := range [2]int32{l, r} {
		if c == none {
			continue
		}
		if t.parent(c) != x {
			return 0, errors.Wrap(ErrInvariant, "broken parent link")
		}
		if t.colorOf(x) == red && t.colorOf(c) == red {
			return 0, errors.Wrap(ErrInvariant, "red node with red child")
		}
	}
	lh, err := t.blackHeight(l)
	if err != nil {
		return 0, err
	}
	rh, err := t.blackHeight(r)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, errors.Wrapf(ErrInvariant, "black height %d != %d", lh, rh)
	}
	if t.colorOf(x) == black {
		lh++
	}
	return lh, nil
}
