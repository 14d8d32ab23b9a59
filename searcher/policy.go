package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards are seen from the player who moved into a node.
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

// evaluate returns q/n + sqrt(c^2*ln(N)/n).
func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/n + math.Sqrt(u.numerator/n)
}

// best returns the index of the child with the highest UCT value. N is the
// children's combined visits, which includes pending virtual losses.
func best(children []Node) int {
	if len(children) == 0 {
		panic("cannot select from no children")
	}
	rewards := make([]float64, len(children))
	visits := make([]float64, len(children))
	total := 0.0
	for i, child := range children {
		rewards[i], visits[i] = child.stats()
		total += visits[i]
	}
	if total == 0 {
		panic("children have no visits")
	}

	policy := newUCT(CSquared, total)
	index := -1
	highest := math.Inf(-1)
	for i := range children {
		if visits[i] == 0 {
			return i
		}
		if score := policy.evaluate(rewards[i], visits[i]); score > highest {
			highest = score
			index = i
		}
	}
	return index
}
