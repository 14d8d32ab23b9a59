package gamemaster

import (
	"mill/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, options ...game.Option) *LocalSession {
	t.Helper()
	s, err := NewLocalSession(options...)
	require.NoError(t, err)
	return s
}

func TestLocalSessionInit(t *testing.T) {
	s := newSession(t)
	state, getUpdate := s.Init()

	p := state.(*game.Position)
	require.Equal(t, game.PhasePlacing, p.Phase())
	require.Equal(t, game.Black, p.SideToMove())
	require.Equal(t, game.Rules[game.DefaultRuleIndex-1].PiecesEachSide, p.PiecesInHand(game.White))

	move, next := getUpdate()
	require.Equal(t, game.MoveNone, move, "No update before any move")
	require.Nil(t, next)
}

func TestLocalSessionInitRejectsBadRule(t *testing.T) {
	_, err := NewLocalSession(game.WithRule(42))
	require.ErrorIs(t, err, game.ErrBadRule)
}

func TestLocalSessionPlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		s := newSession(t)
		state, getUpdate := s.Init()

		require.NoError(t, s.Play(game.PlaceMove(8)))

		move, next := getUpdate()
		require.Equal(t, game.PlaceMove(8), move)
		require.Equal(t, game.Black, next.(*game.Position).PieceAt(8).Owner())
		require.True(t, state.(*game.Position).PieceAt(8).IsEmpty(), "The initial state should be a copy")
	})

	t.Run("updates queue in order", func(t *testing.T) {
		s := newSession(t)
		_, getUpdate := s.Init()

		require.NoError(t, s.Play(game.PlaceMove(8)))
		require.NoError(t, s.Play(game.PlaceMove(9)))

		first, _ := getUpdate()
		second, _ := getUpdate()
		_, none := getUpdate()
		require.Equal(t, game.PlaceMove(8), first)
		require.Equal(t, game.PlaceMove(9), second)
		require.Nil(t, none)
	})

	t.Run("illegal move", func(t *testing.T) {
		s := newSession(t)
		_, getUpdate := s.Init()
		require.NoError(t, s.Play(game.PlaceMove(8)))
		getUpdate()

		require.ErrorIs(t, s.Play(game.PlaceMove(8)), ErrIllegalMove)
		require.ErrorIs(t, s.Play(game.MakeMove(9, 10)), ErrIllegalMove, "Moving is not allowed while placing")

		_, next := getUpdate()
		require.Nil(t, next, "Rejected moves should not publish updates")
	})

	t.Run("game over", func(t *testing.T) {
		s := newSession(t)
		_, getUpdate := s.Init()
		require.NoError(t, s.Play(game.PlaceMove(8)))
		require.NoError(t, s.Command("Player2 give up!"))

		getUpdate()
		_, final := getUpdate()
		require.NotNil(t, final, "Resigning should publish the final state")
		require.Equal(t, "Player1", final.Winner())

		require.ErrorIs(t, s.Play(game.PlaceMove(9)), game.ErrNotPlaying)
	})

	t.Run("init starts over", func(t *testing.T) {
		s := newSession(t)
		s.Init()
		require.NoError(t, s.Play(game.PlaceMove(8)))

		state, getUpdate := s.Init()

		require.True(t, state.(*game.Position).PieceAt(8).IsEmpty())
		_, next := getUpdate()
		require.Nil(t, next, "Updates of the previous game should be dropped")
	})
}

func TestLocalSessionReplay(t *testing.T) {
	t.Run("replaying a saved game", func(t *testing.T) {
		original := newSession(t, game.WithRule(1))
		original.Init()
		for _, sq := range []game.Square{8, 9, 16, 10, 24} {
			require.NoError(t, original.Play(game.PlaceMove(sq)))
		}
		require.NoError(t, original.Play(game.RemoveMove(9)))
		require.NoError(t, original.Command("Player2 give up!"))

		history := strings.Join(original.History(), "\n") + "\n\n"

		replayed := newSession(t)
		require.NoError(t, replayed.Replay(strings.NewReader(history)))

		require.Equal(t, original.History(), replayed.History())
		require.Equal(t, original.Position().Key(), replayed.Position().Key())
		require.Equal(t, game.Black, replayed.Position().WinnerColor())
	})

	t.Run("skipping result lines", func(t *testing.T) {
		s := newSession(t, game.WithRule(1))
		history := "r1 s000 t00\n(1,1) 00:00\nPlayer1 win!\n"

		require.NoError(t, s.Replay(strings.NewReader(history)))

		require.Equal(t, []string{"r1 s000 t00", "(1,1) 00:00"}, s.History())
	})

	t.Run("reporting the failing line", func(t *testing.T) {
		s := newSession(t)
		history := "r1 s000 t00\n(1,1) 00:00\n(1,1) 00:00\n"

		err := s.Replay(strings.NewReader(history))

		require.ErrorIs(t, err, game.ErrOccupied)
		require.ErrorContains(t, err, "line 3")
	})
}
