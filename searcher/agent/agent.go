package agent

import (
	"mill/experiments/metrics"
	"mill/game"
	"mill/searcher"
)

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected)
	// from the search. updates lists the moves played since the last call.
	FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric)
}
