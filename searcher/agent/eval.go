package agent

import (
	"mill/experiments/metrics"
	"mill/game"
	"mill/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	return findMax(policy), metric
}

// findMax returns the most visited move. Ties go to the lowest move so the
// choice does not depend on map order.
func findMax(policy map[game.Move]float64) game.Move {
	maxMove := game.MoveNone
	maxVisit := -1.0
	for move, visit := range policy {
		if visit > maxVisit || (visit == maxVisit && move < maxMove) {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}

type alphaBetaAgent struct {
	searcher *searcher.AlphaBeta
}

// NewAlphaBetaAgent returns an agent playing the principal move of a fixed
// depth search. It keeps no tree, so updates are ignored.
func NewAlphaBetaAgent(ab *searcher.AlphaBeta) Agent {
	return alphaBetaAgent{searcher: ab}
}

func (a alphaBetaAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	return a.searcher.FindMove(state)
}
