package ordered

import (
	"cmp"
	"iter"

	"rbkv/domain/rbtree"
)

// MultiMap is an ordered map that keeps every inserted pair. Pairs with
// equal keys stay in insertion order.
type MultiMap[K, V any] struct {
	core[K, Entry[K, V]]
}

func NewMultiMap[K cmp.Ordered, V any](opts ...Option) *MultiMap[K, V] {
	return NewMultiMapFunc[K, V](lessOf[K](), opts...)
}

func NewMultiMapFunc[K, V any](less func(a, b K) bool, opts ...Option) *MultiMap[K, V] {
	return &MultiMap[K, V]{core[K, Entry[K, V]]{
		t: rbtree.New(entryKey[K, V], less, opts...),
	}}
}

func (m *MultiMap[K, V]) Insert(k K, v V) (MapCursor[K, V], error) {
	return m.t.InsertEqual(Entry[K, V]{Key: k, Value: v})
}

func (m *MultiMap[K, V]) InsertHint(hint MapCursor[K, V], k K, v V) (MapCursor[K, V], error) {
	return m.t.InsertEqualHint(hint, Entry[K, V]{Key: k, Value: v})
}

// InsertAll inserts every pair of seq and returns how many were added.
// It stops at the first allocation error.
func (m *MultiMap[K, V]) InsertAll(seq iter.Seq2[K, V]) (int, error) {
	n := 0
	for k, v := range seq {
		if _, err := m.t.InsertEqualHint(m.t.End(), Entry[K, V]{Key: k, Value: v}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// GetAll returns the values stored under k in insertion order.
func (m *MultiMap[K, V]) GetAll(k K) []V {
	var out []V
	first, last := m.t.EqualRange(k)
	for c := first; !c.Equal(last); c = c.Next() {
		out = append(out, c.Value().Value)
	}
	return out
}

func (m *MultiMap[K, V]) Count(k K) int {
	return m.t.Count(k)
}

// Delete removes every pair under k and returns how many.
func (m *MultiMap[K, V]) Delete(k K) int {
	return m.t.EraseKey(k)
}

func (m *MultiMap[K, V]) Ascend(fn func(K, V) bool) {
	m.t.Ascend(func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

func (m *MultiMap[K, V]) Descend(fn func(K, V) bool) {
	m.t.Descend(func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return m.Ascend
}

func (m *MultiMap[K, V]) Min() (Entry[K, V], bool) { return m.first() }
func (m *MultiMap[K, V]) Max() (Entry[K, V], bool) { return m.last() }

func (m *MultiMap[K, V]) Range(from, to K, fn func(K, V) bool) {
	m.scan(from, to, func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

// Equal is Map.Equal for multimaps; equal keys are matched in order.
func (m *MultiMap[K, V]) Equal(o *MultiMap[K, V], eq func(a, b V) bool) bool {
	return m.equal(o.core, func(x, y Entry[K, V]) bool {
		return m.sameKey(x.Key, y.Key) && eq(x.Value, y.Value)
	})
}

func (m *MultiMap[K, V]) Compare(o *MultiMap[K, V], cmp func(a, b V) int) int {
	return m.compare(o.core, func(x, y Entry[K, V]) int {
		if r := m.compareKeys(x.Key, y.Key); r != 0 {
			return r
		}
		return cmp(x.Value, y.Value)
	})
}

func (m *MultiMap[K, V]) Clone() (*MultiMap[K, V], error) {
	t, err := m.t.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, V]{core[K, Entry[K, V]]{t: t}}, nil
}
