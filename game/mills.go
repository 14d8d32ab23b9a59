package game

// MillSignature identifies one closed mill: three (piece code, square) pairs
// packed into 48 bits in ascending square order.
type MillSignature uint64

func newMillSignature(pieces [3]Piece, squares [3]Square) MillSignature {
	// Three elements: a fixed selection sort keeps the ordering canonical.
	for i := 0; i < 2; i++ {
		lowest := i
		for j := i + 1; j < 3; j++ {
			if squares[j] < squares[lowest] {
				lowest = j
			}
		}
		squares[i], squares[lowest] = squares[lowest], squares[i]
		pieces[i], pieces[lowest] = pieces[lowest], pieces[i]
	}
	var sig uint64
	for i := 0; i < 3; i++ {
		sig = sig<<16 | uint64(pieces[i].Code())<<8 | uint64(squares[i])
	}
	return MillSignature(sig)
}

// Squares returns the three squares of the mill in ascending order.
func (s MillSignature) Squares() [3]Square {
	return [3]Square{
		Square(s >> 32 & 0xff),
		Square(s >> 16 & 0xff),
		Square(s & 0xff),
	}
}

// Codes returns the three piece codes aligned with Squares.
func (s MillSignature) Codes() [3]uint8 {
	return [3]uint8{uint8(s >> 40), uint8(s >> 24), uint8(s >> 8)}
}

// remap moves the squares of the signature through f and re-sorts them.
func (s MillSignature) remap(f func(Square) Square) MillSignature {
	codes := s.Codes()
	squares := s.Squares()
	var pieces [3]Piece
	for i, code := range codes {
		pieces[i] = NewStone(Color(code>>playerShift), int(code&0x0f))
		squares[i] = f(squares[i])
	}
	return newMillSignature(pieces, squares)
}

// addMills counts the mills closed by the piece on sq. Unless the rule lets
// the same mill score again, only mills not seen before count and they are
// remembered.
func (p *Position) addMills(sq Square) int {
	piece := p.board[sq]
	owner := piece.Owner()
	n := 0
	for _, line := range p.topology.MillLines(sq) {
		if p.board[line[0]].Owner() != owner || p.board[line[1]].Owner() != owner {
			continue
		}
		if p.rule.AllowRepeatedSameMill {
			n++
			continue
		}
		sig := newMillSignature(
			[3]Piece{piece, p.board[line[0]], p.board[line[1]]},
			[3]Square{sq, line[0], line[1]},
		)
		if p.hasMill(sig) {
			continue
		}
		p.mills = append(p.mills, sig)
		n++
	}
	return n
}

func (p *Position) hasMill(sig MillSignature) bool {
	for _, m := range p.mills {
		if m == sig {
			return true
		}
	}
	return false
}

// InHowManyMills counts the lines through sq fully held by owner. The piece
// on sq itself is not inspected, so the count also predicts a placement.
func (p *Position) InHowManyMills(sq Square, owner Color) int {
	n := 0
	for _, line := range p.topology.MillLines(sq) {
		if p.board[line[0]].Owner() == owner && p.board[line[1]].Owner() == owner {
			n++
		}
	}
	return n
}

// IsAllInMills reports whether every stone of owner sits in a mill.
func (p *Position) IsAllInMills(owner Color) bool {
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].Owner() == owner && p.InHowManyMills(sq, owner) == 0 {
			return false
		}
	}
	return true
}
