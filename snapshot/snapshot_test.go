package snapshot

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbkv/domain/ordered"
)

func fill(t *testing.T, n int) *ordered.Map[string, []byte] {
	t.Helper()
	m := ordered.NewMap[string, []byte]()
	for i := 0; i < n; i++ {
		_, err := m.Set(fmt.Sprintf("k%02d", i), []byte(fmt.Sprint(i)))
		require.NoError(t, err)
	}
	return m
}

func TestTakeIsolatesFromWrites(t *testing.T) {
	m := fill(t, 10)
	v, err := Take(7, m)
	require.NoError(t, err)
	require.Equal(t, uint64(7), v.Seq)
	require.False(t, v.Created.IsZero())

	m.Delete("k03")
	_, err = m.Set("k04", []byte("changed"))
	require.NoError(t, err)
	_, err = m.Set("zz", nil)
	require.NoError(t, err)

	require.Equal(t, 10, v.Len())
	got, ok := v.Get("k03")
	require.True(t, ok)
	require.Equal(t, []byte("3"), got)
	got, _ = v.Get("k04")
	require.Equal(t, []byte("4"), got)
	_, ok = v.Get("zz")
	require.False(t, ok)
}

func TestViewRange(t *testing.T) {
	v, err := Take(1, fill(t, 10))
	require.NoError(t, err)

	keys := func(es []ordered.Entry[string, []byte]) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.Key)
		}
		return out
	}

	require.Equal(t, []string{"k02", "k03", "k04"}, keys(v.Range("k02", "k05", 0)))
	require.Equal(t, []string{"k08", "k09"}, keys(v.Range("k08", "", 0)))
	require.Equal(t, []string{"k00", "k01"}, keys(v.Range("", "", 2)))
	require.Empty(t, v.Range("k05", "k02", 0))

	n := 0
	v.Ascend(func(string, []byte) bool {
		n++
		return true
	})
	require.Equal(t, 10, n)
}

func TestViewConcurrentReaders(t *testing.T) {
	v, err := Take(1, fill(t, 50))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, v.Range("k10", "k20", 0), 10)
			}
		}()
	}
	wg.Wait()
}

func TestTakeFromBoundedMap(t *testing.T) {
	m := ordered.NewMap[string, []byte](ordered.WithLimit(4))
	for i := 0; i < 4; i++ {
		_, err := m.Set(fmt.Sprint(i), nil)
		require.NoError(t, err)
	}
	v, err := Take(1, m)
	require.NoError(t, err)
	require.Equal(t, 4, v.Len())
}
