package game

// LegalMoves lists every move DoMove would accept in the current state.
func (p *Position) LegalMoves() []Move {
	switch {
	case p.phase == PhaseGameOver:
		return nil
	case p.action == ActionRemove:
		return p.removeMoves()
	case p.phase == PhaseMoving:
		return p.stepMoves()
	default:
		return p.placeMoves()
	}
}

func (p *Position) placeMoves() []Move {
	moves := make([]Move, 0, PlayableSquares)
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].IsEmpty() {
			moves = append(moves, PlaceMove(sq))
		}
	}
	return moves
}

func (p *Position) stepMoves() []Move {
	us := p.sideToMove
	fly := p.canFly(us)
	var moves []Move
	for from := SquareBegin; from < SquareEnd; from++ {
		if p.board[from].Owner() != us {
			continue
		}
		if fly {
			for to := SquareBegin; to < SquareEnd; to++ {
				if p.board[to].IsEmpty() {
					moves = append(moves, MakeMove(from, to))
				}
			}
			continue
		}
		for _, to := range p.topology.Neighbors(from) {
			if p.board[to].IsEmpty() {
				moves = append(moves, MakeMove(from, to))
			}
		}
	}
	return moves
}

func (p *Position) removeMoves() []Move {
	them := p.Opponent()
	protect := !p.rule.AllowRemovePieceInMill && !p.IsAllInMills(them)
	var moves []Move
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].Owner() != them {
			continue
		}
		if protect && p.InHowManyMills(sq, them) > 0 {
			continue
		}
		moves = append(moves, RemoveMove(sq))
	}
	return moves
}

// Mobility counts the empty squares one step away from the stones of c.
func (p *Position) Mobility(c Color) int {
	n := 0
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].Owner() != c {
			continue
		}
		for _, to := range p.topology.Neighbors(sq) {
			if p.board[to].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// MobilityDiff is the mobility of the side to move minus the opponent's.
func (p *Position) MobilityDiff() int {
	return p.Mobility(p.sideToMove) - p.Mobility(p.Opponent())
}

// IsStarSquare reports the four preferred opening points: the middle ring's
// side midpoints when diagonals exist, its corners otherwise.
func (p *Position) IsStarSquare(sq Square) bool {
	if !sq.OnBoard() || sq.ring() != 2 {
		return false
	}
	if p.rule.HasObliqueLines {
		return sq.seat()%2 == 0
	}
	return sq.seat()%2 == 1
}
