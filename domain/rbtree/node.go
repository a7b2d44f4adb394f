package rbtree

type Color uint8

const (
	red   Color = 0
	black Color = 1
)

func (c Color) String() string {
	if c == red {
		return "red"
	}
	return "black"
}

// none marks an absent link.
const none int32 = -1

type node[V any] struct {
	value  V
	color  Color
	parent int32
	left   int32
	right  int32
}

/******************** Link accessors ********************/

func (t *Tree[K, V]) nd(i int32) *node[V] {
	return t.alloc.Slot(i)
}

func (t *Tree[K, V]) left(i int32) int32   { return t.nd(i).left }
func (t *Tree[K, V]) right(i int32) int32  { return t.nd(i).right }
func (t *Tree[K, V]) parent(i int32) int32 { return t.nd(i).parent }

// colorOf treats absent children as black.
func (t *Tree[K, V]) colorOf(i int32) Color {
	if i == none {
		return black
	}
	return t.nd(i).color
}

func (t *Tree[K, V]) setColor(i int32, c Color) {
	t.nd(i).color = c
}

func (t *Tree[K, V]) key(i int32) K {
	return t.keyOf(t.nd(i).value)
}

// root, leftmost and rightmost live in the header.

func (t *Tree[K, V]) root() int32      { return t.nd(t.header).parent }
func (t *Tree[K, V]) leftmost() int32  { return t.nd(t.header).left }
func (t *Tree[K, V]) rightmost() int32 { return t.nd(t.header).right }

func (t *Tree[K, V]) setRoot(i int32)      { t.nd(t.header).parent = i }
func (t *Tree[K, V]) setLeftmost(i int32)  { t.nd(t.header).left = i }
func (t *Tree[K, V]) setRightmost(i int32) { t.nd(t.header).right = i }

func (t *Tree[K, V]) minimum(i int32) int32 {
	for t.left(i) != none {
		i = t.left(i)
	}
	return i
}

func (t *Tree[K, V]) maximum(i int32) int32 {
	for t.right(i) != none {
		i = t.right(i)
	}
	return i
}

// resetHeader puts the header back into the empty-tree shape.
func (t *Tree[K, V]) resetHeader() {
	h := t.nd(t.header)
	h.color = red
	h.parent = none
	h.left = t.header
	h.right = t.header
}

/******************** Rotations ********************/

func (t *Tree[K, V]) rotateLeft(x int32) {
	y := t.right(x)
	xn, yn := t.nd(x), t.nd(y)

	xn.right = yn.left
	if yn.left != none {
		t.nd(yn.left).parent = x
	}
	yn.parent = xn.parent

	if x == t.root() {
		t.setRoot(y)
	} else if p := t.nd(xn.parent); x == p.left {
		p.left = y
	} else {
		p.right = y
	}
	yn.left = x
	xn.parent = y
}

func (t *Tree[K, V]) rotateRight(x int32) {
	y := t.left(x)
	xn, yn := t.nd(x), t.nd(y)

	xn.left = yn.right
	if yn.right != none {
		t.nd(yn.right).parent = x
	}
	yn.parent = xn.parent

	if x == t.root() {
		t.setRoot(y)
	} else if p := t.nd(xn.parent); x == p.right {
		p.right = y
	} else {
		p.left = y
	}
	yn.right = x
	xn.parent = y
}
