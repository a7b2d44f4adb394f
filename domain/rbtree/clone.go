package rbtree

import "github.com/cockroachdb/errors"

// Clone returns a deep copy of t with the same shape, colors and
// element limit.
func (t *Tree[K, V]) Clone() (*Tree[K, V], error) {
	c := New(t.keyOf, t.less, WithNodeLimit(t.limit))
	if err := c.CopyFrom(t); err != nil {
		return nil, err
	}
	return c, nil
}

// CopyFrom replaces the contents of t with a deep copy of src. The copy
// is built before the old contents are released; if it cannot be
// completed every node cloned so far is freed and t is left as it was.
func (t *Tree[K, V]) CopyFrom(src *Tree[K, V]) error {
	if t == src {
		return nil
	}
	if src.count == 0 {
		t.Clear()
		return nil
	}

	var cloned []int32
	root, err := t.copyNodes(src, &cloned)
	if err != nil {
		for _, n := range cloned {
			t.alloc.Release(n)
		}
		return errors.Mark(errors.Wrap(err, "rbtree: clone"), ErrAllocation)
	}

	if t.count > 0 {
		t.releaseSubtree(t.root())
	}
	t.nd(root).parent = t.header
	t.setRoot(root)
	t.setLeftmost(t.minimum(root))
	t.setRightmost(t.maximum(root))
	t.count = src.count
	return nil
}

type clonePair struct {
	from, to int32
}

// copyNodes clones src's nodes into t's storage, recording every slot
// it obtains in cloned, and returns the detached copy of src's root.
func (t *Tree[K, V]) copyNodes(src *Tree[K, V], cloned *[]int32) (int32, error) {
	root, err := t.cloneNode(src, src.root(), cloned)
	if err != nil {
		return none, err
	}
	stack := []clonePair{{from: src.root(), to: root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if l := src.left(p.from); l != none {
			n, err := t.cloneNode(src, l, cloned)
			if err != nil {
				return none, err
			}
			t.nd(p.to).left = n
			t.nd(n).parent = p.to
			stack = append(stack, clonePair{from: l, to: n})
		}
		if r := src.right(p.from); r != none {
			n, err := t.cloneNode(src, r, cloned)
			if err != nil {
				return none, err
			}
			t.nd(p.to).right = n
			t.nd(n).parent = p.to
			stack = append(stack, clonePair{from: r, to: n})
		}
	}
	return root, nil
}

func (t *Tree[K, V]) cloneNode(src *Tree[K, V], from int32, cloned *[]int32) (int32, error) {
	n, err := t.alloc.Obtain()
	if err != nil {
		return none, err
	}
	*cloned = append(*cloned, n)
	s := src.nd(from)
	d := t.nd(n)
	d.value = s.value
	d.color = s.color
	d.parent = none
	d.left = none
	d.right = none
	return n, nil
}
