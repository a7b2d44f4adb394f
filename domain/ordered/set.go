package ordered

import (
	"cmp"
	"iter"

	"rbkv/domain/rbtree"
)

// SetCursor is a position in a Set or MultiSet.
type SetCursor[K any] = rbtree.Cursor[K, K]

// Set is an ordered set of unique elements.
type Set[K any] struct {
	core[K, K]
}

func NewSet[K cmp.Ordered](opts ...Option) *Set[K] {
	return NewSetFunc[K](lessOf[K](), opts...)
}

func NewSetFunc[K any](less func(a, b K) bool, opts ...Option) *Set[K] {
	return &Set[K]{core[K, K]{t: rbtree.New(identity[K], less, opts...)}}
}

// Insert adds k and reports whether it was new.
func (s *Set[K]) Insert(k K) (bool, error) {
	_, ok, err := s.t.InsertUnique(k)
	return ok, err
}

// InsertHint is Insert with a position hint, see rbtree.InsertUniqueHint.
func (s *Set[K]) InsertHint(hint SetCursor[K], k K) (SetCursor[K], bool, error) {
	return s.t.InsertUniqueHint(hint, k)
}

// InsertAll adds every element of seq and returns how many were new.
// It stops at the first allocation error.
func (s *Set[K]) InsertAll(seq iter.Seq[K]) (int, error) {
	n := 0
	for k := range seq {
		_, ok, err := s.t.InsertUniqueHint(s.t.End(), k)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (s *Set[K]) Delete(k K) bool {
	return s.t.EraseKey(k) == 1
}

func (s *Set[K]) Ascend(fn func(K) bool)  { s.t.Ascend(fn) }
func (s *Set[K]) Descend(fn func(K) bool) { s.t.Descend(fn) }

func (s *Set[K]) Range(from, to K, fn func(K) bool) { s.scan(from, to, fn) }

func (s *Set[K]) All() iter.Seq[K] { return s.t.All() }

func (s *Set[K]) Min() (K, bool) { return s.first() }
func (s *Set[K]) Max() (K, bool) { return s.last() }

// Equal reports whether s and o hold equivalent elements.
func (s *Set[K]) Equal(o *Set[K]) bool {
	return s.equal(o.core, s.sameKey)
}

// Compare orders s and o lexicographically.
func (s *Set[K]) Compare(o *Set[K]) int {
	return s.compare(o.core, s.compareKeys)
}

func (s *Set[K]) Clone() (*Set[K], error) {
	t, err := s.t.Clone()
	if err != nil {
		return nil, err
	}
	return &Set[K]{core[K, K]{t: t}}, nil
}

// MultiSet is an ordered multiset.
type MultiSet[K any] struct {
	core[K, K]
}

func NewMultiSet[K cmp.Ordered](opts ...Option) *MultiSet[K] {
	return NewMultiSetFunc[K](lessOf[K](), opts...)
}

func NewMultiSetFunc[K any](less func(a, b K) bool, opts ...Option) *MultiSet[K] {
	return &MultiSet[K]{core[K, K]{t: rbtree.New(identity[K], less, opts...)}}
}

func (s *MultiSet[K]) Insert(k K) error {
	_, err := s.t.InsertEqual(k)
	return err
}

// InsertHint is Insert with a position hint, see rbtree.InsertEqualHint.
func (s *MultiSet[K]) InsertHint(hint SetCursor[K], k K) (SetCursor[K], error) {
	return s.t.InsertEqualHint(hint, k)
}

// InsertAll adds every element of seq and returns how many were added.
// It stops at the first allocation error.
func (s *MultiSet[K]) InsertAll(seq iter.Seq[K]) (int, error) {
	n := 0
	for k := range seq {
		if _, err := s.t.InsertEqualHint(s.t.End(), k); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *MultiSet[K]) Count(k K) int { return s.t.Count(k) }

// Delete removes every copy of k and returns how many.
func (s *MultiSet[K]) Delete(k K) int { return s.t.EraseKey(k) }

func (s *MultiSet[K]) Ascend(fn func(K) bool)  { s.t.Ascend(fn) }
func (s *MultiSet[K]) Descend(fn func(K) bool) { s.t.Descend(fn) }

func (s *MultiSet[K]) Range(from, to K, fn func(K) bool) { s.scan(from, to, fn) }

func (s *MultiSet[K]) All() iter.Seq[K] { return s.t.All() }

func (s *MultiSet[K]) Min() (K, bool) { return s.first() }
func (s *MultiSet[K]) Max() (K, bool) { return s.last() }

func (s *MultiSet[K]) Equal(o *MultiSet[K]) bool {
	return s.equal(o.core, s.sameKey)
}

func (s *MultiSet[K]) Compare(o *MultiSet[K]) int {
	return s.compare(o.core, s.compareKeys)
}

func (s *MultiSet[K]) Clone() (*MultiSet[K], error) {
	t, err := s.t.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiSet[K]{core[K, K]{t: t}}, nil
}
