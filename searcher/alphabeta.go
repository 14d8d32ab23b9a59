package searcher

import (
	"math"
	"mill/experiments/metrics"
	"mill/game"
	"mill/tt"
	"time"
)

// AlphaBeta is a fixed depth negamax search. A ply that leaves the same side
// to move, such as a removal after a mill, is not negated.
type AlphaBeta struct {
	depth    int
	table    *tt.Table
	evaluate game.Evaluate
	nodes    int
}

// NewAlphaBeta creates a searcher. table may be nil to search without a
// transposition table.
func NewAlphaBeta(depth int, table *tt.Table) *AlphaBeta {
	if depth <= 0 {
		depth = 1
	}
	return &AlphaBeta{depth: depth, table: table, evaluate: game.EvaluateBoard}
}

// Search returns the best move for the side to move in state and its score
// from that side's perspective. It returns game.MoveNone for a finished game.
func (a *AlphaBeta) Search(state game.State) (game.Move, float64) {
	a.nodes = 0
	if a.table != nil {
		a.table.NextGeneration()
	}
	value, move := a.negamax(state, a.depth, math.Inf(-1), math.Inf(1))
	return move, value
}

// FindMove runs Search and reports its cost.
func (a *AlphaBeta) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	move, _ := a.Search(state)
	return move, metrics.SearchMetric{
		Goroutines: 1,
		Duration:   time.Since(start),
		Depth:      a.depth,
		Nodes:      a.nodes,
	}
}

func (a *AlphaBeta) negamax(state game.State, depth int, alpha, beta float64) (float64, game.Move) {
	a.nodes++
	moves := state.LegalMoves()
	if len(moves) == 0 || depth == 0 {
		return a.evaluate(state), game.MoveNone
	}

	key := uint64(state.Hash())
	original := alpha
	hint := game.MoveNone
	if a.table != nil {
		if e, ok := a.table.Probe(key); ok {
			hint = e.BestMove
			// The root always searches so the returned move is legal here.
			if e.Depth >= depth && depth < a.depth {
				switch e.Bound {
				case tt.Exact:
					return e.Value, e.BestMove
				case tt.Lower:
					alpha = math.Max(alpha, e.Value)
				case tt.Upper:
					beta = math.Min(beta, e.Value)
				}
				if alpha >= beta {
					return e.Value, e.BestMove
				}
			}
		}
	}
	orderFirst(moves, hint)

	best := math.Inf(-1)
	bestMove := moves[0]
	for _, move := range moves {
		child := state.Play(move)
		var score float64
		if child.Player() == state.Player() {
			score, _ = a.negamax(child, depth-1, alpha, beta)
		} else {
			score, _ = a.negamax(child, depth-1, -beta, -alpha)
			score = -score
		}
		if score > best {
			best = score
			bestMove = move
		}
		alpha = math.Max(alpha, score)
		if alpha >= beta {
			break
		}
	}

	if a.table != nil {
		bound := tt.Exact
		switch {
		case best <= original:
			bound = tt.Upper
		case best >= beta:
			bound = tt.Lower
		}
		a.table.Store(key, depth, best, bound, bestMove)
	}
	return best, bestMove
}

// orderFirst moves hint to the front of moves when present.
func orderFirst(moves []game.Move, hint game.Move) {
	if hint == game.MoveNone {
		return
	}
	for i, m := range moves {
		if m == hint {
			copy(moves[1:i+1], moves[:i])
			moves[0] = hint
			return
		}
	}
}
