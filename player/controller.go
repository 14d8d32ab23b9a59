// Package player drives search agents through a refereed game session.
package player

import (
	"errors"
	"fmt"
	"mill/game"
	"mill/gamemaster"
	"mill/searcher"
	"mill/searcher/agent"

	"github.com/rs/zerolog/log"
)

// MaxTurns bounds a session game whose rule sets no step limit.
const MaxTurns = 1000

var ErrNoController = errors.New("no controller for the side to move")

// Controller plays one side of a session with an agent.
type Controller struct {
	player  string
	agent   agent.Agent
	updates []searcher.Segment // moves since this controller last played
}

func NewController(color game.Color, a agent.Agent) *Controller {
	return &Controller{player: color.Player(), agent: a}
}

func (c *Controller) Player() string {
	return c.player
}

func (c *Controller) observe(move game.Move, state game.State) {
	c.updates = append(c.updates, searcher.Segment{Move: move, StateHash: state.Hash()})
}

func (c *Controller) turn(state game.State, session gamemaster.Session) error {
	move, _ := c.agent.FindMove(state, c.updates)
	c.updates = nil
	if err := session.Play(move); err != nil {
		return fmt.Errorf("%s: %w", c.player, err)
	}
	return nil
}

// Play starts a new game on the session and lets the controllers take turns
// until it is over. It returns the final state.
func Play(session gamemaster.Session, controllers ...*Controller) (game.State, error) {
	byPlayer := make(map[string]*Controller, len(controllers))
	for _, c := range controllers {
		byPlayer[c.player] = c
		c.updates = nil
	}

	state, getUpdate := session.Init()
	for turn := 0; len(state.LegalMoves()) > 0; turn++ {
		if turn == MaxTurns {
			log.Info().Msgf("stopped after %d turns without a result", MaxTurns)
			break
		}
		c, ok := byPlayer[state.Player()]
		if !ok {
			return state, fmt.Errorf("%w: %s", ErrNoController, state.Player())
		}
		if err := c.turn(state, session); err != nil {
			return state, err
		}
		for move, next := getUpdate(); next != nil; move, next = getUpdate() {
			state = next
			for _, c := range controllers {
				c.observe(move, next)
			}
		}
	}
	return state, nil
}
