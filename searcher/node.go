package searcher

import "mill/game"

type Node interface {
	// SelectOrExpand descends one level: it either selects an explored child
	// (selected is true), expands a new child, or returns itself when terminal.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup records a playout scored from player's perspective and returns the parent.
	Backup(player string, score float64) Node
	Visits() float64
	applyLoss()
	stats() (rewards float64, visits float64)
}

// Segment is one played move with the hash of the state it led to.
type Segment struct {
	Move      game.Move
	StateHash game.StateHash
}

// computeReward converts a score from scorer's perspective to player's.
func computeReward(player string, scorer string, score float64) float64 {
	if player == scorer {
		return score
	}
	return -score
}
