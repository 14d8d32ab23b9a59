package game

import "gonum.org/v1/gonum/floats"

// boardWeights weighs material, mobility, open lines and a pending removal.
var boardWeights = []float64{0.5, 0.2, 0.2, 0.1}

// EvaluateMaterial compares the pieces each side still owns (on the board and
// in hand) to produce a score between -1 and 1 from the current player's perspective
func EvaluateMaterial(s State) float64 {
	p := mustPosition(s)
	if score, over := p.terminalScore(); over {
		return score
	}
	us, them := p.sideToMove, p.Opponent()
	return normalize(float64(p.material(us)), float64(p.material(them)))
}

// EvaluateBoard adds mobility, lines one stone short of a mill and a pending
// removal to the material count, weighted into a score between -1 and 1
func EvaluateBoard(s State) float64 {
	p := mustPosition(s)
	if score, over := p.terminalScore(); over {
		return score
	}
	us, them := p.sideToMove, p.Opponent()
	pending := 0.0
	if p.action == ActionRemove {
		pending = 1
	}
	features := []float64{
		normalize(float64(p.material(us)), float64(p.material(them))),
		normalize(float64(p.Mobility(us)), float64(p.Mobility(them))),
		normalize(float64(p.openLines(us)), float64(p.openLines(them))),
		pending,
	}
	return floats.Dot(boardWeights, features)
}

func mustPosition(s State) *Position {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	return p
}

func (p *Position) terminalScore() (float64, bool) {
	if p.phase != PhaseGameOver {
		return 0, false
	}
	switch p.winner {
	case p.sideToMove:
		return 1, true
	case p.Opponent():
		return -1, true
	default:
		return 0, true
	}
}

func (p *Position) material(c Color) int {
	return p.piecesOnBoard[c] + p.piecesInHand[c]
}

// openLines counts lines holding two stones of c and one empty square.
// Each line is seen from its empty square, so it is counted once.
func (p *Position) openLines(c Color) int {
	n := 0
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].IsEmpty() {
			n += p.InHowManyMills(sq, c)
		}
	}
	return n
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
