package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCommand(t *testing.T) {
	t.Run("rule selection", func(t *testing.T) {
		p := newTestPosition(t)

		require.NoError(t, p.Command("r1 s050 t10"))

		require.Equal(t, Rules[0].Name, p.Rule().Name)
		require.Equal(t, 50, p.Rule().MaxStepsLedToDraw)
		require.Equal(t, 10, p.Rule().MaxTimeLedToLose)
		require.Equal(t, 1, p.RuleNumber())
		require.Equal(t, []string{"r1 s050 t10"}, p.HistoryText())
		require.Equal(t, 9, p.PiecesInHand(Black))
	})

	t.Run("unknown rule", func(t *testing.T) {
		p := newTestPosition(t)

		require.ErrorIs(t, p.Command("r9 s000 t00"), ErrBadCommand)
		require.Equal(t, DefaultRuleIndex, p.RuleNumber())
	})

	t.Run("place with a clock", func(t *testing.T) {
		p := newTestPosition(t)

		require.NoError(t, p.Command("(1,1) 00:03"))

		require.Equal(t, Black, p.PieceAt(8).Owner())
		require.Equal(t, 3, p.Elapsed(Black))
		require.Equal(t, "(1,1) 00:03", p.HistoryText()[1])
	})

	t.Run("place without a clock", func(t *testing.T) {
		p := newTestPosition(t)

		require.NoError(t, p.Command("(3,8)"))

		require.Equal(t, Black, p.PieceAt(31).Owner())
	})

	t.Run("move and remove", func(t *testing.T) {
		p := newRulePosition(t, tinyRule)
		for _, cmd := range []string{"(1,1) 00:01", "(1,2) 00:02", "(1,5) 00:03", "(1,6) 00:04", "(2,2) 00:05", "(3,3) 00:06", "(2,6) 00:07", "(3,7) 00:08"} {
			require.NoError(t, p.Command(cmd), cmd)
		}
		require.Equal(t, PhaseMoving, p.Phase())

		require.NoError(t, p.Command("(1,1)->(1,8) 00:09"))

		require.Equal(t, Black, p.PieceAt(15).Owner())
		require.Equal(t, 9, p.Elapsed(Black))
		require.ErrorIs(t, p.Command("-(1,1) 00:10"), ErrWrongAction)
	})

	t.Run("malformed commands", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8)
		before := snap(p)

		for _, cmd := range []string{"", "hello", "(0,1) 00:00", "(4,1)", "(1,9) 00:00", "(1,1)->(5,5) 00:00", "-(0,0) 00:00", "r s1 t1", "Player give up!"} {
			require.ErrorIs(t, p.Command(cmd), ErrBadCommand, "%q should be rejected", cmd)
		}
		require.Equal(t, before, snap(p))
		require.Equal(t, -1, p.timePoint, "A rejected command should not leave a clock behind")
	})

	t.Run("illegal commands keep the clock", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8)

		require.ErrorIs(t, p.Command("(1,1) 09:00"), ErrOccupied)
		require.Equal(t, -1, p.timePoint)
		require.Equal(t, 0, p.Elapsed(White))
	})

	t.Run("give up", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8)

		require.NoError(t, p.Command("Player2 give up!"))

		require.Equal(t, Black, p.WinnerColor())
		require.ErrorIs(t, p.Command("Player1 give up!"), ErrNotPlaying)
	})

	t.Run("give up for an unknown player", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8)

		require.ErrorIs(t, p.Command("Player3 give up!"), ErrNotOwner)
	})
}

func TestReplay(t *testing.T) {
	t.Run("replaying the history reproduces the game", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for index := range Rules {
			original := newTestPosition(t, WithRule(index+1))
			playRandom(t, original, rng, 120)

			replayed := newTestPosition(t)
			for _, record := range original.History() {
				if record.Kind == RecordResult {
					continue
				}
				require.NoError(t, replayed.Command(record.String()), record.String())
			}

			require.Equal(t, original.Key(), replayed.Key())
			require.Equal(t, original.board, replayed.board)
			require.Equal(t, original.HistoryText(), replayed.HistoryText())
			require.Equal(t, original.WinnerColor(), replayed.WinnerColor())
		}
	})
}

func TestKey(t *testing.T) {
	t.Run("fresh position", func(t *testing.T) {
		p := newTestPosition(t)

		require.Equal(t, uint64(12)<<60, p.Key(), "Only black's pieces in hand should be set")
	})

	t.Run("context bits", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8, 10, 16, 11, 24)

		misc := p.Key() >> 56
		require.Zero(t, misc&miscSideBit, "Black is to move")
		require.NotZero(t, misc&miscRemoveBit, "A removal is pending")
		require.Equal(t, uint64(1), misc>>miscQuotaShift&miscQuotaMask)
		require.Equal(t, uint64(9), misc>>miscInHandShift)
		require.Equal(t, p.PositionKey(), p.Key()&positionMask)
	})

	t.Run("side to move changes the key", func(t *testing.T) {
		p := newTestPosition(t)
		play(t, p, 8)
		key := p.Key()

		p.DoNullMove()
		require.NotEqual(t, key, p.Key())
		p.UndoNullMove()
		require.Equal(t, key, p.Key())
	})

	t.Run("zobrist constants fit in 56 bits", func(t *testing.T) {
		for sq := SquareBegin; sq < SquareEnd; sq++ {
			for _, v := range zobrist[sq] {
				require.Zero(t, v&^positionMask)
				require.NotZero(t, v)
			}
		}
	})

	t.Run("same board by different orders", func(t *testing.T) {
		a := newTestPosition(t)
		play(t, a, 8, 9, 12, 13)
		b := newTestPosition(t)
		play(t, b, 12, 13, 8, 9)

		require.Equal(t, a.Key(), b.Key())
	})
}
