package engine

import "mill/experiments/metrics"

// MaxMoves stops games whose rule sets no step limit.
const MaxMoves = 1000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
