// Package experiments plays series of games between configured agents and
// stores the metrics as CSV files.
package experiments

import (
	"errors"
	"fmt"
	"mill/engine"
	"mill/experiments/metrics"
	"mill/game"
	"mill/searcher"
	"mill/searcher/agent"
	"mill/tt"

	"github.com/rs/zerolog/log"
)

const (
	KindMCTS      = "mcts"
	KindAlphaBeta = "alphabeta"

	TableSize    = 1 << 16
	TableBuckets = 2
)

var ErrUnknownAgent = errors.New("unknown agent")

type Experiment struct {
	Name      string
	Games     int // Per match up
	OutputDir string
	Rule      int // 1-based index into the catalog passed with Options
	Options   []game.Option
	Agents    []metrics.AgentConfig
	MatchUps  [][2]int // Pairs of AgentConfig.ID
}

// Run plays every match up and returns the directory holding the results.
// Agents swap seats on every other game so neither keeps the first move.
func Run(e Experiment) (string, error) {
	configs := make(map[int]metrics.AgentConfig, len(e.Agents))
	for _, config := range e.Agents {
		configs[config.ID] = config
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", e.Name)

	for mi, matchUp := range e.MatchUps {
		config1, ok1 := configs[matchUp[0]]
		config2, ok2 := configs[matchUp[1]]
		if !ok1 || !ok2 {
			return "", fmt.Errorf("%w in match up %v", ErrUnknownAgent, matchUp)
		}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), config1, config2)

		for i := 0; i < e.Games; i++ {
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}

			winner, gameMetric, moveMetrics, err := runGame(e, first, second)
			if err != nil {
				return "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q", mi+1, len(e.MatchUps), i+1, e.Games, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", e.Name)
	return store(e, gameRecords, moveRecords)
}

func store(e Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(e.OutputDir, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner.
func runGame(e Experiment, config1, config2 metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := NewAgent(config1, tt.New(TableSize, TableBuckets))
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agent2, err := NewAgent(config2, tt.New(TableSize, TableBuckets))
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	local, err := engine.LocalEngine(e.Rule, []agent.Agent{agent1, agent2}, e.Options...)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	winner, gameMetric, moveMetrics := local.Run()
	return winner, gameMetric, moveMetrics, nil
}

// NewAgent builds the evaluation agent described by config. The table is
// only used by alpha-beta agents and may be nil.
func NewAgent(config metrics.AgentConfig, table *tt.Table) (agent.Agent, error) {
	switch config.Kind {
	case KindMCTS, "":
		return agent.NewEvaluationAgent(createMCTS(config)), nil
	case KindAlphaBeta:
		return agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(config.Depth, table)), nil
	default:
		return nil, fmt.Errorf("%w kind %q", ErrUnknownAgent, config.Kind)
	}
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
