package ordered

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"
)

// TestMapMatchesPebble drives a Map and an in-memory pebble store with the
// same writes and compares seeks and full scans.
func TestMapMatchesPebble(t *testing.T) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	defer db.Close()

	m := NewMap[string, []byte]()
	rng := rand.New(rand.NewPCG(11, 13))
	key := func() string { return fmt.Sprintf("k/%04d", rng.IntN(800)) }

	for step := 0; step < 3000; step++ {
		k := key()
		if rng.IntN(4) == 0 {
			m.Delete(k)
			require.NoError(t, db.Delete([]byte(k), pebble.NoSync))
			continue
		}
		v := []byte(fmt.Sprintf("v%d", step))
		_, err := m.Set(k, v)
		require.NoError(t, err)
		require.NoError(t, db.Set([]byte(k), v, pebble.NoSync))
	}
	require.NoError(t, m.Validate())

	iter, err := db.NewIter(&pebble.IterOptions{})
	require.NoError(t, err)
	defer iter.Close()

	for i := 0; i < 500; i++ {
		q := key()
		c := m.LowerBound(q)
		valid := iter.SeekGE([]byte(q))
		require.Equal(t, valid, !c.IsEnd(), "seek %s", q)
		if valid {
			require.Equal(t, string(iter.Key()), c.Key())
			require.True(t, bytes.Equal(iter.Value(), c.Value().Value))
		}
	}

	n := 0
	c := m.Begin()
	for iter.First(); iter.Valid(); iter.Next() {
		require.False(t, c.IsEnd())
		require.Equal(t, string(iter.Key()), c.Key())
		c = c.Next()
		n++
	}
	require.NoError(t, iter.Error())
	require.True(t, c.IsEnd())
	require.Equal(t, n, m.Len())
}
