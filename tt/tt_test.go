package tt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"mill/game"
)

func TestNew(t *testing.T) {
	t.Run("size is rounded up to a power of two", func(t *testing.T) {
		table := New(100, 2)
		require.Equal(t, 256, table.Capacity())
		require.Equal(t, uint32(1), table.Generation())
	})

	t.Run("degenerate sizes", func(t *testing.T) {
		table := New(0, 0)
		require.Equal(t, 2, table.Capacity())
	})
}

func TestProbeStore(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		table := New(16, 2)
		_, ok := table.Probe(42)
		require.False(t, ok)

		require.True(t, table.Store(42, 3, 0.5, Exact, game.PlaceMove(8)))

		e, ok := table.Probe(42)
		require.True(t, ok)
		require.Equal(t, 3, e.Depth)
		require.Equal(t, 0.5, e.Value)
		require.Equal(t, Exact, e.Bound)
		require.Equal(t, game.PlaceMove(8), e.BestMove)
		require.Equal(t, 1, table.Len())
	})

	t.Run("shallower results do not replace deeper ones", func(t *testing.T) {
		table := New(16, 2)
		table.Store(7, 5, 1, Exact, game.PlaceMove(9))

		require.False(t, table.Store(7, 2, -1, Exact, game.PlaceMove(10)))

		e, _ := table.Probe(7)
		require.Equal(t, 5, e.Depth)
		require.Equal(t, game.PlaceMove(9), e.BestMove)
	})

	t.Run("exact results replace bounds of equal depth", func(t *testing.T) {
		table := New(16, 2)
		table.Store(7, 3, 1, Lower, game.PlaceMove(9))

		require.True(t, table.Store(7, 3, 0.25, Exact, game.PlaceMove(10)))
		require.False(t, table.Store(7, 3, 0.75, Upper, game.PlaceMove(11)))

		e, _ := table.Probe(7)
		require.Equal(t, Exact, e.Bound)
		require.Equal(t, 0.25, e.Value)
	})

	t.Run("stale entries give way", func(t *testing.T) {
		table := New(16, 2)
		table.Store(7, 6, 1, Exact, game.PlaceMove(9))
		for i := 0; i < staleGenerations; i++ {
			table.NextGeneration()
		}

		require.True(t, table.Store(7, 1, 0, Upper, game.PlaceMove(10)))
	})

	t.Run("full buckets evict the shallowest entry", func(t *testing.T) {
		table := New(4, 2)
		table.Store(1, 4, 0, Exact, game.MoveNone)
		table.Store(5, 2, 0, Exact, game.MoveNone)

		require.True(t, table.Store(9, 3, 0, Exact, game.MoveNone))

		_, ok := table.Probe(5)
		require.False(t, ok)
		_, ok = table.Probe(1)
		require.True(t, ok)
		_, ok = table.Probe(9)
		require.True(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		table := New(16, 2)
		table.Store(1, 1, 0, Exact, game.MoveNone)
		table.NextGeneration()

		table.Clear()

		require.Zero(t, table.Len())
		require.Equal(t, uint32(1), table.Generation())
	})
}

func TestConcurrentAccess(t *testing.T) {
	table := New(1<<10, 2)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			for i := uint64(0); i < 2000; i++ {
				key := (seed << 32) ^ i*0x9e3779b97f4a7c15
				table.Store(key, int(i%8), float64(i), Exact, game.PlaceMove(game.Square(8+i%24)))
				table.Probe(key)
			}
		}(uint64(g + 1))
	}
	wg.Wait()

	require.NotZero(t, table.Len())
}

func TestGenerationWrap(t *testing.T) {
	table := New(16, 1)
	table.gen.Store(^uint32(0))

	table.NextGeneration()

	require.NotZero(t, table.Generation())
}
