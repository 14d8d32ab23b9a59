package game

import "fmt"

// Player returns the searcher name of the side to move.
func (p *Position) Player() string {
	return p.sideToMove.Player()
}

// Play returns a copy with m applied. History and clock are not tracked on
// the copy. An illegal move is a programming error in the caller.
func (p *Position) Play(m Move) State {
	next := p.searchCopy()
	if err := next.DoMove(m); err != nil {
		panic(fmt.Sprintf("cannot play %s: %v", m, err))
	}
	return next
}

func (p *Position) Hash() StateHash {
	return StateHash(p.Key())
}

// Winner returns the winning player's name, or "" while the game runs or
// when it ended in a draw.
func (p *Position) Winner() string {
	if p.phase != PhaseGameOver {
		return ""
	}
	return p.winner.Player()
}
