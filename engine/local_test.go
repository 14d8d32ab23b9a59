package engine

import (
	"mill/experiments/metrics"
	"mill/game"
	"mill/searcher"
	"mill/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
)

// firstMove always plays the first legal move, or an illegal one when told to.
type firstMove struct {
	illegal bool
	calls   [][]searcher.Segment
}

func (a *firstMove) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	a.calls = append(a.calls, updates)
	if a.illegal {
		return game.MoveNone, metrics.SearchMetric{}
	}
	return state.LegalMoves()[0], metrics.SearchMetric{Goroutines: 1}
}

func TestLocalEngine(t *testing.T) {
	t.Run("rejects a wrong number of agents", func(t *testing.T) {
		_, err := LocalEngine(1, []agent.Agent{&firstMove{}})
		require.Error(t, err)
	})

	t.Run("rejects an unknown rule", func(t *testing.T) {
		_, err := LocalEngine(99, []agent.Agent{&firstMove{}, &firstMove{}})
		require.ErrorIs(t, err, game.ErrBadRule)
	})

	t.Run("plays to the end", func(t *testing.T) {
		black, white := &firstMove{}, &firstMove{}
		e, err := LocalEngine(3, []agent.Agent{black, white})
		require.NoError(t, err)

		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, game.PhaseGameOver, e.Position.Phase())
		require.Equal(t, e.Position.Winner(), winner)
		require.Equal(t, gameMetric.TotalMoves, len(moveMetrics))
		require.Equal(t, len(black.calls)+len(white.calls), gameMetric.TotalMoves)
		require.NotEmpty(t, gameMetric.Reason)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		require.Equal(t, 1, gameMetric.StartingPlayer, "Black opens")
		require.Equal(t, 1, moveMetrics[0].Player)
		require.Equal(t, 1, moveMetrics[0].Step)
		require.Greater(t, len(e.Position.History()), gameMetric.TotalMoves, "The game should be recorded")
	})

	t.Run("agents see every move since their last turn", func(t *testing.T) {
		black, white := &firstMove{}, &firstMove{}
		e, err := LocalEngine(1, []agent.Agent{black, white})
		require.NoError(t, err)

		e.Run()

		require.Empty(t, black.calls[0], "Black opens with nothing to catch up on")
		require.Len(t, white.calls[0], 1)
		require.Len(t, black.calls[1], 2)
	})

	t.Run("illegal moves are replaced", func(t *testing.T) {
		e, err := LocalEngine(3, []agent.Agent{&firstMove{illegal: true}, &firstMove{}})
		require.NoError(t, err)

		_, gameMetric, _ := e.Run()

		require.Equal(t, game.PhaseGameOver, e.Position.Phase())
		require.NotZero(t, gameMetric.TotalMoves)
	})

	t.Run("alpha-beta agents finish a short game", func(t *testing.T) {
		rule := game.Rule{Name: "Sudden death", PiecesEachSide: 4, PiecesAtLeast: 4, MaxStepsLedToDraw: 20}
		agents := []agent.Agent{
			agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(2, nil)),
			agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(2, nil)),
		}
		e, err := LocalEngine(1, agents, game.WithRules([]game.Rule{rule}))
		require.NoError(t, err)

		_, gameMetric, moveMetrics := e.Run()

		require.Equal(t, game.PhaseGameOver, e.Position.Phase())
		require.Less(t, gameMetric.TotalMoves, MaxMoves)
		for _, m := range moveMetrics {
			require.Equal(t, 2, m.Depth)
		}
	})
}

func TestSubstitute(t *testing.T) {
	t.Run("first legal move", func(t *testing.T) {
		move, ok := substitute([]game.Move{game.PlaceMove(9), game.PlaceMove(10)})

		require.True(t, ok)
		require.Equal(t, game.PlaceMove(9), move)
	})

	t.Run("nothing to play", func(t *testing.T) {
		move, ok := substitute(nil)

		require.False(t, ok)
		require.Equal(t, game.MoveNone, move)
	})
}
