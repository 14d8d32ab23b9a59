package engine

import (
	"fmt"
	"mill/experiments/metrics"
	"mill/game"
	"mill/searcher"
	"mill/searcher/agent"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Local plays a recorded game between two in-process agents. The first
// agent plays black, which moves first unless the rule lets the defender
// open.
type Local struct {
	Position *game.Position
	Agents   []agent.Agent
}

// LocalEngine creates a game under the 1-based rule index of the catalog.
func LocalEngine(rule int, agents []agent.Agent, options ...game.Option) (*Local, error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("need exactly two agents, got %d", len(agents))
	}
	p, err := game.NewPosition(append(options, game.WithRule(rule))...)
	if err != nil {
		return nil, fmt.Errorf("cannot create game: %w", err)
	}
	return &Local{Position: p, Agents: agents}, nil
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	p := e.Position
	if err := p.Start(); err != nil {
		log.Warn().Err(err).Msg("game was already started")
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: playerID(p.SideToMove()),
		StartTime:      time.Now(),
	}
	lineages := make([][]searcher.Segment, len(e.Agents))
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s is starting under %s", p.SideToMove().Player(), p.Rule().Name)

	step := 0
	for p.Phase() != game.PhaseGameOver && step < MaxMoves {
		step++
		id := playerID(p.SideToMove())
		index := id - 1

		move, metric := e.Agents[index].FindMove(p, lineages[index])
		lineages[index] = nil
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       id,
			SearchMetric: metric,
		})

		if err := p.DoMove(move); err != nil {
			replacement, ok := substitute(p.LegalMoves())
			if !ok {
				log.Warn().Err(err).Msgf("agent %d returned an illegal move %s with no legal move left", id, move)
				break
			}
			log.Warn().Err(err).Msgf("agent %d returned an illegal move %s, playing %s instead", id, move, replacement)
			move = replacement
			if err := p.DoMove(move); err != nil {
				panic(fmt.Sprintf("legal move %s was rejected: %v", move, err))
			}
		}

		segment := searcher.Segment{Move: move, StateHash: p.Hash()}
		for i := range lineages {
			lineages[i] = append(lineages[i], segment)
		}
	}

	if p.Phase() != game.PhaseGameOver {
		log.Info().Msgf("stopped after %d moves without a result", step)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Winner = p.Winner()
	gameMetric.Reason = overReason(p.History())
	return gameMetric.Winner, gameMetric, moveMetrics
}

// substitute picks the move played in place of an illegal one.
func substitute(legal []game.Move) (game.Move, bool) {
	if len(legal) == 0 {
		return game.MoveNone, false
	}
	return legal[0], true
}

// playerID numbers black 1 and white 2.
func playerID(c game.Color) int {
	if c == game.White {
		return 2
	}
	return 1
}

func overReason(history []game.Record) string {
	i := slices.IndexFunc(history, func(r game.Record) bool {
		return r.Kind == game.RecordResult || r.Kind == game.RecordResign
	})
	if i < 0 {
		return ""
	}
	if history[i].Kind == game.RecordResign {
		return game.ReasonResign.String()
	}
	return history[i].Reason.String()
}
