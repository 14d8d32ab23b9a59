package gamemaster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mill/game"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrIllegalMove = errors.New("illegal move")

// UpdateGetter returns the oldest unread move with a copy of the state it led
// to, or a nil state when there is none.
type UpdateGetter func() (game.Move, game.State)

type Session interface {
	Init() (game.State, UpdateGetter)
	Play(game.Move) error
}

type update struct {
	move  game.Move
	state game.State
}

// LocalSession referees one recorded game and queues every accepted move for
// the players.
type LocalSession struct {
	mu       sync.Mutex
	position *game.Position
	updates  []update
}

var resultLine = regexp.MustCompile(`(win|draw)!$`)

func NewLocalSession(options ...game.Option) (*LocalSession, error) {
	p, err := game.NewPosition(options...)
	if err != nil {
		return nil, fmt.Errorf("cannot create session: %w", err)
	}
	return &LocalSession{position: p}, nil
}

// Init starts a fresh game under the current rule.
func (s *LocalSession) Init() (game.State, UpdateGetter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position.Reset()
	if err := s.position.Start(); err != nil {
		log.Warn().Err(err).Msg("cannot start a new game")
	}
	s.updates = nil
	return s.position.Clone(), s.next
}

func (s *LocalSession) next() (game.Move, game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.updates) == 0 {
		return game.MoveNone, nil
	}
	u := s.updates[0]
	s.updates = s.updates[1:]
	return u.move, u.state
}

// Play applies a move after checking it against the legal moves.
func (s *LocalSession) Play(move game.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.position
	if p.Phase() == game.PhaseGameOver {
		return fmt.Errorf("cannot play %s: %w", move, game.ErrNotPlaying)
	}
	if !slices.Contains(p.LegalMoves(), move) {
		return fmt.Errorf("cannot play %s: %w", move, ErrIllegalMove)
	}
	if err := p.DoMove(move); err != nil {
		return fmt.Errorf("cannot play %s: %w", move, err)
	}
	s.push(move)
	return nil
}

// Command applies one line of the text protocol.
func (s *LocalSession) Command(cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.command(cmd)
}

func (s *LocalSession) command(cmd string) error {
	steps, phase := s.position.Steps(), s.position.Phase()
	if err := s.position.Command(cmd); err != nil {
		return err
	}
	if s.position.Steps() != steps || s.position.Phase() != phase {
		s.push(s.position.LastMove())
	}
	return nil
}

func (s *LocalSession) push(move game.Move) {
	s.updates = append(s.updates, update{move: move, state: s.position.Clone()})
	if s.position.Phase() == game.PhaseGameOver {
		log.Info().Msg(s.position.Tips())
	}
}

// Replay feeds a saved history through the text protocol. Blank lines and
// result lines are skipped since results follow from the moves.
func (s *LocalSession) Replay(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || resultLine.MatchString(text) {
			continue
		}
		if err := s.command(text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read history: %w", err)
	}
	return nil
}

// History renders the recorded game one entry per line.
func (s *LocalSession) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position.HistoryText()
}

func (s *LocalSession) Position() *game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position.Clone()
}
