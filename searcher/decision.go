package searcher

import (
	"mill/game"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is a tree node for one position. Its statistics are kept from the
// perspective of player, the side that made the move leading here.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     string
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []Node
	rewards    float64
	visits     float64
}

// newDecision creates a node for state reached by a move of player. Moves are
// shuffled so concurrent expansions spread over the tree.
func newDecision(parent *decision, player string, state game.State) *decision {
	moves := state.LegalMoves()
	unexplored := make([]game.Move, len(moves))
	copy(unexplored, moves)
	rand.Shuffle(len(unexplored), func(i, j int) {
		unexplored[i], unexplored[j] = unexplored[j], unexplored[i]
	})

	return &decision{
		parent:     parent,
		player:     player,
		hash:       state.Hash(),
		unexplored: unexplored,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) > 0 { // Expandable node
		last := len(d.unexplored) - 1
		move := d.unexplored[last]
		d.unexplored = d.unexplored[:last]

		next := state.Play(move)
		child := newDecision(d, state.Player(), next)
		child.applyLoss()
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		return child, next, false
	}

	if len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	// Fully expanded node
	i := best(d.children)
	child := d.children[i]
	child.applyLoss()
	return child, state.Play(d.explored[i]), true
}

func (d *decision) Backup(player string, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}
	d.rewards += computeReward(d.player, player, score)
	d.visits++

	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

func (d *decision) stats() (float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.rewards, d.visits
}

// applyLoss records a virtual loss so concurrent workers prefer other paths
// until Backup reverses it.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// child returns the explored child for move, or nil.
func (d *decision) child(move game.Move) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, m := range d.explored {
		if m == move {
			return d.children[i].(*decision)
		}
	}
	return nil
}

// Policy maps each explored move to the visits of its child.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.Visits()
	}
	return policy
}
