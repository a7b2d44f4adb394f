package rbtree

import (
	"math/rand/v2"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/require"
)

// TestMatchesBTree replays a random workload against google/btree and
// compares contents and bound queries after every step.
func TestMatchesBTree(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	tr := newIntTree()
	ref := btree.NewG[int](4, intLess)

	lower := func(k int) (int, bool) {
		var got int
		found := false
		ref.AscendGreaterOrEqual(k, func(v int) bool {
			got, found = v, true
			return false
		})
		return got, found
	}

	for step := 0; step < 5000; step++ {
		k := rng.IntN(500)
		switch rng.IntN(3) {
		case 0, 1:
			_, ok, err := tr.InsertUnique(k)
			require.NoError(t, err)
			_, existed := ref.ReplaceOrInsert(k)
			require.Equal(t, !existed, ok, "step %d insert %d", step, k)
		case 2:
			_, existed := ref.Delete(k)
			require.Equal(t, existed, tr.EraseKey(k) == 1, "step %d erase %d", step, k)
		}
		require.Equal(t, ref.Len(), tr.Len())

		q := rng.IntN(520) - 10
		want, ok := lower(q)
		c := tr.LowerBound(q)
		require.Equal(t, !ok, c.IsEnd(), "lower bound %d", q)
		if ok {
			require.Equal(t, want, c.Value())
		}
		want, ok = lower(q + 1)
		c = tr.UpperBound(q)
		require.Equal(t, !ok, c.IsEnd(), "upper bound %d", q)
		if ok {
			require.Equal(t, want, c.Value())
		}

		if step%250 == 0 {
			require.NoError(t, tr.Validate())
		}
	}

	var want []int
	ref.Ascend(func(v int) bool {
		want = append(want, v)
		return true
	})
	require.Equal(t, want, collect(tr))
	require.NoError(t, tr.Validate())
}

func BenchmarkInsertUnique(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	tr := newIntTree()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = tr.InsertUnique(rng.Int())
	}
}

func BenchmarkFind(b *testing.B) {
	tr := newIntTree()
	for i := 0; i < 1<<16; i++ {
		_, _, _ = tr.InsertUnique(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Find(i & (1<<16 - 1))
	}
}
