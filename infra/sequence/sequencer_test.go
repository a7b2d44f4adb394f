package sequence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequencer(t *testing.T) {
	s := New(41)
	require.Equal(t, uint64(41), s.Current())
	require.Equal(t, uint64(42), s.Peek())
	require.Equal(t, uint64(42), s.Next())
	require.Equal(t, uint64(42), s.Current())
}

func TestPeekDoesNotCommit(t *testing.T) {
	s := New(0)
	require.Equal(t, uint64(1), s.Peek())
	require.Equal(t, uint64(1), s.Peek())
	require.Equal(t, uint64(0), s.Current())
	require.Equal(t, s.Peek(), s.Next())
}

func TestSequencerConcurrentUnique(t *testing.T) {
	s := New(0)
	const workers, each = 8, 1000

	var mu sync.Mutex
	seen := make(map[uint64]struct{}, workers*each)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, each)
			for i := 0; i < each; i++ {
				local = append(local, s.Next())
			}
			mu.Lock()
			for _, v := range local {
				seen[v] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*each)
	require.Equal(t, uint64(workers*each), s.Current())
}
