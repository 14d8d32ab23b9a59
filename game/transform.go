package game

import "fmt"

// MirrorSquare reflects sq left to right through the vertical axis.
func MirrorSquare(sq Square) Square {
	if !sq.OnBoard() {
		return sq
	}
	return square(sq.ring(), Seats-sq.seat())
}

// TurnSquare swaps the inner and outer rings.
func TurnSquare(sq Square) Square {
	if !sq.OnBoard() {
		return sq
	}
	return square(Rings+1-sq.ring(), sq.seat())
}

// RotateSquare turns sq by degrees; the caller checks the angle.
func RotateSquare(sq Square, degrees int) Square {
	if !sq.OnBoard() {
		return sq
	}
	k := (degrees / 45) % Seats
	return square(sq.ring(), sq.seat()+Seats-k)
}

// Mirror relabels the position by its left-right reflection.
func (p *Position) Mirror() {
	p.transform(MirrorSquare)
}

// Turn relabels the position by swapping the inner and outer rings.
func (p *Position) Turn() {
	p.transform(TurnSquare)
}

// Rotate relabels the position by a rotation of degrees, which must be a
// multiple of 90 so that mill lines map onto mill lines.
func (p *Position) Rotate(degrees int) error {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	if degrees%90 != 0 {
		return fmt.Errorf("cannot rotate by %d: %w", degrees, ErrBadRotation)
	}
	if degrees == 0 {
		return nil
	}
	p.transform(func(sq Square) Square { return RotateSquare(sq, degrees) })
	return nil
}

// transform moves every square-valued field through the bijection f: the
// board, the current square, the last move, the mill list and the history.
// The positional key is rebuilt since Zobrist constants are per square.
func (p *Position) transform(f func(Square) Square) {
	var board [SquareCount]Piece
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		board[f(sq)] = p.board[sq]
	}
	p.board = board
	p.key = p.computeKey()

	if p.currentSquare.OnBoard() {
		p.currentSquare = f(p.currentSquare)
	}
	p.move = p.move.remap(f)

	for i, m := range p.mills {
		p.mills[i] = m.remap(f)
	}
	for i, record := range p.history {
		p.history[i] = record.remap(f)
	}
	p.updateTips()
}
