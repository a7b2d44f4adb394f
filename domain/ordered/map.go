package ordered

import (
	"cmp"
	"iter"

	"rbkv/domain/rbtree"
)

// Entry is a key/value pair stored in a Map or MultiMap.
type Entry[K, V any] struct {
	Key   K
	Value V
}

func entryKey[K, V any](e Entry[K, V]) K { return e.Key }

// MapCursor is a position in a Map or MultiMap.
type MapCursor[K, V any] = rbtree.Cursor[K, Entry[K, V]]

// Map is an ordered map with unique keys.
type Map[K, V any] struct {
	core[K, Entry[K, V]]
}

func NewMap[K cmp.Ordered, V any](opts ...Option) *Map[K, V] {
	return NewMapFunc[K, V](lessOf[K](), opts...)
}

// NewMapFunc creates a map ordered by less, which must be a strict
// weak ordering.
func NewMapFunc[K, V any](less func(a, b K) bool, opts ...Option) *Map[K, V] {
	return &Map[K, V]{core[K, Entry[K, V]]{
		t: rbtree.New(entryKey[K, V], less, opts...),
	}}
}

// Insert adds k unless it is present. It reports whether it was added.
func (m *Map[K, V]) Insert(k K, v V) (bool, error) {
	_, ok, err := m.t.InsertUnique(Entry[K, V]{Key: k, Value: v})
	return ok, err
}

// InsertHint is Insert with a position hint, see rbtree.InsertUniqueHint.
func (m *Map[K, V]) InsertHint(hint MapCursor[K, V], k K, v V) (MapCursor[K, V], bool, error) {
	return m.t.InsertUniqueHint(hint, Entry[K, V]{Key: k, Value: v})
}

// InsertAll inserts every pair of seq that is not already present and
// returns how many were added. It stops at the first allocation error.
// Ascending input costs amortized O(1) per pair.
func (m *Map[K, V]) InsertAll(seq iter.Seq2[K, V]) (int, error) {
	n := 0
	for k, v := range seq {
		_, ok, err := m.t.InsertUniqueHint(m.t.End(), Entry[K, V]{Key: k, Value: v})
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// Set inserts or overwrites k. It reports whether k was new.
func (m *Map[K, V]) Set(k K, v V) (bool, error) {
	e := Entry[K, V]{Key: k, Value: v}
	c, ok, err := m.t.InsertUnique(e)
	if err != nil {
		return false, err
	}
	if !ok {
		c.Replace(e)
	}
	return ok, nil
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	c := m.t.Find(k)
	if c.IsEnd() {
		var zero V
		return zero, false
	}
	return c.Value().Value, true
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	return m.t.EraseKey(k) == 1
}

// DeleteCursor removes the entry under c and returns its successor.
func (m *Map[K, V]) DeleteCursor(c MapCursor[K, V]) MapCursor[K, V] {
	return m.t.Erase(c)
}

// DeleteRange removes every key in [from, to) and returns how many.
func (m *Map[K, V]) DeleteRange(from, to K) int {
	if m.t.Less(to, from) {
		return 0
	}
	first := m.t.LowerBound(from)
	last := m.t.LowerBound(to)
	n := rbtree.Distance(first, last)
	m.t.EraseRange(first, last)
	return n
}

// Ascend calls fn in key order until it returns false.
func (m *Map[K, V]) Ascend(fn func(K, V) bool) {
	m.t.Ascend(func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

// Descend calls fn in reverse key order until it returns false.
func (m *Map[K, V]) Descend(fn func(K, V) bool) {
	m.t.Descend(func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

// Range visits keys in [from, to) in order.
func (m *Map[K, V]) Range(from, to K, fn func(K, V) bool) {
	m.scan(from, to, func(e Entry[K, V]) bool { return fn(e.Key, e.Value) })
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.Ascend
}

func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Ascend(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Min returns the entry with the smallest key.
func (m *Map[K, V]) Min() (Entry[K, V], bool) { return m.first() }

// Max returns the entry with the largest key.
func (m *Map[K, V]) Max() (Entry[K, V], bool) { return m.last() }

// Equal reports whether m and o hold equivalent keys in the same order
// with values equal under eq.
func (m *Map[K, V]) Equal(o *Map[K, V], eq func(a, b V) bool) bool {
	return m.equal(o.core, func(x, y Entry[K, V]) bool {
		return m.sameKey(x.Key, y.Key) && eq(x.Value, y.Value)
	})
}

// Compare orders m and o lexicographically by key, then by value using
// cmp. It returns -1, 0 or +1 in the manner of cmp.Compare.
func (m *Map[K, V]) Compare(o *Map[K, V], cmp func(a, b V) int) int {
	return m.compare(o.core, func(x, y Entry[K, V]) int {
		if r := m.compareKeys(x.Key, y.Key); r != 0 {
			return r
		}
		return cmp(x.Value, y.Value)
	})
}

// Clone returns a deep copy of the map.
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	t, err := m.t.Clone()
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{core[K, Entry[K, V]]{t: t}}, nil
}
