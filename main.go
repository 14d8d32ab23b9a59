package main

import (
	"flag"
	"fmt"
	"mill/config"
	"mill/experiments"
	"mill/experiments/metrics"
	"mill/game"
	"mill/gamemaster"
	"mill/player"
	"mill/searcher/agent"
	"mill/tt"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults are used when empty")
	replay := flag.String("replay", "", "Replay a saved game history and print its outcome")
	experiment := flag.Bool("experiment", false, "Run the configured experiment instead of a single game")
	flag.Parse()

	c, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := c.Log.Apply(os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch {
	case *replay != "":
		err = runReplay(c, *replay)
	case *experiment:
		err = runExperiment(c)
	default:
		err = runGame(c)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func runReplay(c config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	session, err := gamemaster.NewLocalSession(c.GameOptions()...)
	if err != nil {
		return err
	}
	if err := session.Replay(f); err != nil {
		return err
	}
	printGame(session)
	return nil
}

func runExperiment(c config.Config) error {
	_, err := experiments.Run(experiments.Experiment{
		Name:      c.Experiment.Name,
		Games:     c.Experiment.Games,
		OutputDir: c.Experiment.OutputDir,
		Rule:      c.Game.Rule,
		Options:   []game.Option{game.WithRules(c.Catalog())},
		Agents:    c.Experiment.Agents,
		MatchUps:  c.Experiment.MatchUps,
	})
	return err
}

// runGame lets the configured searcher play both sides of one game.
func runGame(c config.Config) error {
	session, err := gamemaster.NewLocalSession(c.GameOptions()...)
	if err != nil {
		return err
	}
	black, err := newAgent(c.Search)
	if err != nil {
		return err
	}
	white, err := newAgent(c.Search)
	if err != nil {
		return err
	}

	log.Info().Msgf("playing %s with %s search", session.Position().Rule().Name, c.Search.Kind)
	if _, err := player.Play(session, player.NewController(game.Black, black), player.NewController(game.White, white)); err != nil {
		return err
	}
	printGame(session)
	return nil
}

func newAgent(s config.Search) (agent.Agent, error) {
	return experiments.NewAgent(metrics.AgentConfig{
		Kind:       s.Kind,
		Goroutines: s.Goroutines,
		Duration:   s.Duration,
		Episodes:   s.Episodes,
		Cutoff:     s.Cutoff,
		Depth:      s.Depth,
	}, tt.New(s.TTSize, s.TTBuckets))
}

func printGame(session *gamemaster.LocalSession) {
	for _, line := range session.History() {
		fmt.Println(line)
	}
	fmt.Println(session.Position().Tips())
}
