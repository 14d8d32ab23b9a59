// Package config loads the YAML settings shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"mill/experiments/metrics"
	"mill/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

const (
	SearchMCTS      = "mcts"
	SearchAlphaBeta = "alphabeta"
)

type Config struct {
	Log        Log        `yaml:"log"`
	Game       Game       `yaml:"game"`
	Search     Search     `yaml:"search"`
	Experiment Experiment `yaml:"experiment"`
}

type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"` // human readable output instead of JSON
}

type Game struct {
	Rule  int         `yaml:"rule"`  // 1-based index into Rules
	Rules []game.Rule `yaml:"rules"` // replaces the built-in catalog when set
}

type Search struct {
	Kind       string        `yaml:"kind"`
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	Cutoff     int           `yaml:"cutoff"`
	Depth      int           `yaml:"depth"`
	TTSize     uint64        `yaml:"ttSize"`
	TTBuckets  int           `yaml:"ttBuckets"`
}

type Experiment struct {
	Name      string                `yaml:"name"`
	Games     int                   `yaml:"games"` // per match up
	OutputDir string                `yaml:"outputDir"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	MatchUps  [][2]int              `yaml:"matchUps"` // pairs of agent IDs
}

func Default() Config {
	const budget = 10 * time.Millisecond
	agents := []metrics.AgentConfig{{ID: 0, Kind: SearchMCTS, Goroutines: 8, Duration: budget}} // Full playouts
	matchUps := [][2]int{}
	for i, cutoff := range []int{10, 50, 100} {
		id := i + 1
		agents = append(agents, metrics.AgentConfig{ID: id, Kind: SearchMCTS, Goroutines: 8, Duration: budget, Cutoff: cutoff})
		matchUps = append(matchUps, [2]int{0, id})
	}

	return Config{
		Log: Log{Level: "info", Console: true},
		Game: Game{
			Rule: game.DefaultRuleIndex,
		},
		Search: Search{
			Kind:       SearchMCTS,
			Goroutines: 8,
			Episodes:   150,
			Cutoff:     100,
			Depth:      4,
			TTSize:     1 << 16,
			TTBuckets:  2,
		},
		Experiment: Experiment{
			Name:      "cutoff",
			Games:     30,
			OutputDir: "experiments",
			Agents:    agents,
			MatchUps:  matchUps,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Catalog returns the rule list rule indices refer to.
func (c Config) Catalog() []game.Rule {
	if len(c.Game.Rules) > 0 {
		return c.Game.Rules
	}
	return game.Rules
}

// GameOptions builds the Position options selected by the config.
func (c Config) GameOptions() []game.Option {
	return []game.Option{game.WithRules(c.Catalog()), game.WithRule(c.Game.Rule)}
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}

	for _, rule := range c.Game.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if catalog := c.Catalog(); c.Game.Rule < 1 || c.Game.Rule > len(catalog) {
		return fmt.Errorf("%w: rule %d is not in a catalog of %d", ErrInvalid, c.Game.Rule, len(catalog))
	}

	if err := c.Search.validate(); err != nil {
		return err
	}

	if c.Experiment.Games <= 0 {
		return fmt.Errorf("%w: experiment needs at least one game per match up", ErrInvalid)
	}
	ids := map[int]bool{}
	for _, agent := range c.Experiment.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("%w: agent id %d is used twice", ErrInvalid, agent.ID)
		}
		ids[agent.ID] = true
		search := Search{Kind: agent.Kind, Goroutines: agent.Goroutines, Episodes: agent.Episodes, Duration: agent.Duration, Depth: agent.Depth}
		if err := search.validate(); err != nil {
			return fmt.Errorf("agent %d: %w", agent.ID, err)
		}
	}
	for _, matchUp := range c.Experiment.MatchUps {
		for _, id := range matchUp {
			if !ids[id] {
				return fmt.Errorf("%w: match up %v refers to unknown agent %d", ErrInvalid, matchUp, id)
			}
		}
	}
	return nil
}

func (s Search) validate() error {
	switch s.Kind {
	case SearchMCTS:
		if s.Episodes <= 0 && s.Duration <= 0 {
			return fmt.Errorf("%w: mcts needs episodes or a duration", ErrInvalid)
		}
	case SearchAlphaBeta:
		if s.Depth <= 0 {
			return fmt.Errorf("%w: alphabeta needs a positive depth", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown search kind %q", ErrInvalid, s.Kind)
	}
	return nil
}

// Apply configures the global logger.
func (l Log) Apply(out io.Writer) error {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	zerolog.SetGlobalLevel(level)
	if l.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
	return nil
}
