package searcher

import (
	"mill/game"
	"mill/tt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every removal ends the game, so the first mill wins.
var suddenDeath = game.Rule{
	Name:           "Sudden death",
	PiecesEachSide: 4,
	PiecesAtLeast:  4,
}

func newSuddenDeath(t *testing.T) *game.Position {
	t.Helper()
	p := newPosition(t, game.WithRules([]game.Rule{suddenDeath}), game.WithRule(1))
	for _, sq := range []game.Square{8, 12, 16, 20} {
		require.NoError(t, p.Place(sq))
	}
	return p
}

func TestAlphaBeta(t *testing.T) {
	for _, withTable := range []bool{false, true} {
		var table *tt.Table
		name := "without table"
		if withTable {
			table = tt.New(1<<12, 2)
			name = "with table"
		}

		t.Run(name, func(t *testing.T) {
			t.Run("closing the winning mill", func(t *testing.T) {
				p := newSuddenDeath(t)
				a := NewAlphaBeta(2, table)

				move, value := a.Search(p)

				require.Equal(t, game.PlaceMove(24), move, "Black should close 8-16-24 before white closes 12-20-28")
				require.Equal(t, 1.0, value)
			})

			t.Run("removing after the mill", func(t *testing.T) {
				p := newSuddenDeath(t)
				require.NoError(t, p.Place(24))
				a := NewAlphaBeta(2, table)

				move, value := a.Search(p)

				require.Equal(t, game.MoveTypeRemove, move.Type())
				require.Contains(t, []game.Square{12, 20}, move.To())
				require.Equal(t, 1.0, value)
			})

			t.Run("closing a ring mill", func(t *testing.T) {
				p := newPosition(t, game.WithRules([]game.Rule{suddenDeath}), game.WithRule(1))
				for _, sq := range []game.Square{8, 12, 9, 20} {
					require.NoError(t, p.Place(sq))
				}
				a := NewAlphaBeta(3, table)

				move, _ := a.Search(p)

				require.Equal(t, game.PlaceMove(15), move, "Closing 15-8-9 wins on the spot")
			})
		})
	}

	t.Run("finished games have no move", func(t *testing.T) {
		p := newPosition(t)
		require.NoError(t, p.Start())
		require.NoError(t, p.GiveUp(game.White))

		move, _ := NewAlphaBeta(3, nil).Search(p)

		require.Equal(t, game.MoveNone, move)
	})

	t.Run("table collects results", func(t *testing.T) {
		table := tt.New(1<<12, 2)
		p := newSuddenDeath(t)

		move, metric := NewAlphaBeta(2, table).FindMove(p)

		require.Equal(t, game.PlaceMove(24), move)
		require.NotZero(t, table.Len())
		require.Equal(t, 2, metric.Depth)
		require.Greater(t, metric.Nodes, 1)

		e, ok := table.Probe(uint64(p.Hash()))
		require.True(t, ok, "The root should be stored")
		require.Equal(t, game.PlaceMove(24), e.BestMove)
	})
}

func TestOrderFirst(t *testing.T) {
	moves := []game.Move{8, 9, 10, 11}

	orderFirst(moves, 10)
	require.Equal(t, []game.Move{10, 8, 9, 11}, moves)

	orderFirst(moves, 30)
	require.Equal(t, []game.Move{10, 8, 9, 11}, moves, "Unknown hints leave the order alone")
}
