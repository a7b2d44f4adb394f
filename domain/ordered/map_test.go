package ordered

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"rbkv/domain/rbtree"
)

func TestMapInsertSetGet(t *testing.T) {
	m := NewMap[string, int]()

	ok, err := m.Insert("b", 2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.Insert("b", 20)
	require.NoError(t, err)
	require.False(t, ok)
	v, found := m.Get("b")
	require.True(t, found)
	require.Equal(t, 2, v)

	created, err := m.Set("b", 22)
	require.NoError(t, err)
	require.False(t, created)
	v, _ = m.Get("b")
	require.Equal(t, 22, v)

	created, err = m.Set("a", 1)
	require.NoError(t, err)
	require.True(t, created)

	_, found = m.Get("zz")
	require.False(t, found)
	require.Equal(t, []string{"a", "b"}, m.Keys())
	require.NoError(t, m.Validate())
}

func TestMapDelete(t *testing.T) {
	m := NewMap[int, string]()
	for i := 0; i < 10; i++ {
		_, err := m.Set(i, strings.Repeat("x", i))
		require.NoError(t, err)
	}

	require.True(t, m.Delete(3))
	require.False(t, m.Delete(3))
	require.Equal(t, 9, m.Len())

	require.Equal(t, 3, m.DeleteRange(5, 8))
	require.Equal(t, []int{0, 1, 2, 4, 8, 9}, m.Keys())
	require.Equal(t, 0, m.DeleteRange(8, 2))

	next := m.DeleteCursor(m.Find(4))
	require.Equal(t, 8, next.Key())
	require.Equal(t, []int{0, 1, 2, 8, 9}, m.Keys())
	require.NoError(t, m.Validate())
}

func TestMapIteration(t *testing.T) {
	m := NewMap[int, int]()
	for _, k := range []int{5, 1, 4, 2, 3} {
		_, err := m.Insert(k, k*10)
		require.NoError(t, err)
	}

	var keys []int
	for k, v := range m.All() {
		require.Equal(t, k*10, v)
		keys = append(keys, k)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, keys)

	keys = keys[:0]
	m.Descend(func(k, _ int) bool {
		keys = append(keys, k)
		return k > 3
	})
	require.Equal(t, []int{5, 4, 3}, keys)

	keys = keys[:0]
	m.Range(2, 4, func(k, _ int) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, []int{2, 3}, keys)

	lo, ok := m.Min()
	require.True(t, ok)
	require.Equal(t, Entry[int, int]{Key: 1, Value: 10}, lo)
	hi, ok := m.Max()
	require.True(t, ok)
	require.Equal(t, 5, hi.Key)

	m.Clear()
	_, ok = m.Min()
	require.False(t, ok)
	require.True(t, m.Empty())
}

func TestMapCustomOrder(t *testing.T) {
	m := NewMapFunc[string, int](func(a, b string) bool {
		return strings.ToLower(a) < strings.ToLower(b)
	})
	_, err := m.Set("Beta", 1)
	require.NoError(t, err)
	created, err := m.Set("beta", 2)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 1, m.Len())
	v, _ := m.Get("BETA")
	require.Equal(t, 2, v)
}

func TestMapLimit(t *testing.T) {
	m := NewMap[int, int](WithLimit(2))
	_, err := m.Insert(1, 1)
	require.NoError(t, err)
	_, err = m.Insert(2, 2)
	require.NoError(t, err)

	_, err = m.Insert(3, 3)
	require.True(t, errors.Is(err, rbtree.ErrAllocation))
	require.Equal(t, 2, m.Len())

	// Overwriting an existing key needs no room.
	_, err = m.Set(2, 20)
	require.NoError(t, err)

	require.True(t, m.Delete(1))
	_, err = m.Insert(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
}

func TestMapHintedInsert(t *testing.T) {
	m := NewMap[int, int]()
	hint := m.End()
	for i := 0; i < 100; i++ {
		c, ok, err := m.InsertHint(hint, i, i)
		require.NoError(t, err)
		require.True(t, ok)
		hint = c.Next()
	}
	require.Equal(t, 100, m.Len())
	require.NoError(t, m.Validate())
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 50; i++ {
		_, err := m.Insert(i, i)
		require.NoError(t, err)
	}
	c, err := m.Clone()
	require.NoError(t, err)
	require.True(t, m.Delete(10))
	_, err = c.Set(11, -1)
	require.NoError(t, err)

	require.Equal(t, 49, m.Len())
	require.Equal(t, 50, c.Len())
	v, _ := m.Get(11)
	require.Equal(t, 11, v)
	require.True(t, c.Contains(10))
	require.NoError(t, c.Validate())
}

func TestMultiMap(t *testing.T) {
	m := NewMultiMap[string, int]()
	for i, k := range []string{"a", "b", "a", "c", "a"} {
		_, err := m.Insert(k, i)
		require.NoError(t, err)
	}

	require.Equal(t, 3, m.Count("a"))
	require.Equal(t, []int{0, 2, 4}, m.GetAll("a"))
	require.Nil(t, m.GetAll("z"))

	first, last := m.EqualRange("a")
	require.Equal(t, 3, rbtree.Distance(first, last))
	require.Equal(t, "b", last.Key())

	_, err := m.InsertHint(m.Find("b"), "a", 9)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4, 9}, m.GetAll("a"))

	require.Equal(t, 4, m.Delete("a"))
	require.Equal(t, 0, m.Delete("a"))
	require.Equal(t, 2, m.Len())

	var keys []string
	m.Ascend(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, []string{"b", "c"}, keys)

	keys = keys[:0]
	for k := range m.All() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"b", "c"}, keys)
	hi, ok := m.Max()
	require.True(t, ok)
	require.Equal(t, "c", hi.Key)

	c, err := m.Clone()
	require.NoError(t, err)
	m.Clear()
	require.Equal(t, 2, c.Len())
	require.NoError(t, c.Validate())
}
