package game

import "fmt"

// Move packs one action into a signed integer:
//
//	place  = destination square
//	move   = origin<<8 | destination
//	remove = -square
type Move int32

// MoveNone is the zero move; square 0 is never playable.
const MoveNone Move = 0

type MoveType int

const (
	MoveTypePlace MoveType = iota
	MoveTypeMove
	MoveTypeRemove
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeMove:
		return "move"
	case MoveTypeRemove:
		return "remove"
	default:
		return "place"
	}
}

func PlaceMove(to Square) Move      { return Move(to) }
func RemoveMove(sq Square) Move     { return Move(-sq) }
func MakeMove(from, to Square) Move { return Move(from)<<8 | Move(to) }

func (m Move) Type() MoveType {
	switch {
	case m < 0:
		return MoveTypeRemove
	case m&0x1f00 != 0:
		return MoveTypeMove
	default:
		return MoveTypePlace
	}
}

// From returns the origin square of a move, 0 for other types.
func (m Move) From() Square {
	if m.Type() != MoveTypeMove {
		return 0
	}
	return Square(m >> 8)
}

// To returns the square the action acts on.
func (m Move) To() Square {
	if m < 0 {
		return Square(-m)
	}
	return Square(m & 0x00ff)
}

func (m Move) String() string {
	switch m.Type() {
	case MoveTypeRemove:
		return "-" + m.To().String()
	case MoveTypeMove:
		return fmt.Sprintf("%s->%s", m.From(), m.To())
	default:
		return m.To().String()
	}
}

// remap sends every square of the move through f.
func (m Move) remap(f func(Square) Square) Move {
	switch m.Type() {
	case MoveTypeRemove:
		return RemoveMove(f(m.To()))
	case MoveTypeMove:
		return MakeMove(f(m.From()), f(m.To()))
	default:
		if m == MoveNone {
			return m
		}
		return PlaceMove(f(m.To()))
	}
}
