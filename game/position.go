package game

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Phase int

const (
	PhaseReady Phase = iota
	PhasePlacing
	PhaseMoving
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlacing:
		return "placing"
	case PhaseMoving:
		return "moving"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// IsPlaying is true while pieces are being placed or moved.
func (p Phase) IsPlaying() bool {
	return p == PhasePlacing || p == PhaseMoving
}

// Action is the input the Position expects next.
type Action int

const (
	ActionNone Action = iota
	ActionPlace
	ActionSelect
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionPlace:
		return "place"
	case ActionSelect:
		return "select"
	case ActionRemove:
		return "remove"
	default:
		return "none"
	}
}

// Position is the mutable state of one game. It is not safe for concurrent
// use; searchers work on copies returned by Play.
type Position struct {
	catalog   []Rule
	rule      Rule
	ruleIndex int
	topology  *Topology
	clock     func() time.Time

	board            [SquareCount]Piece
	sideToMove       Color
	phase            Phase
	action           Action
	piecesOnBoard    [3]int // indexed by Color
	piecesInHand     [3]int
	piecesNeedRemove int
	currentSquare    Square
	move             Move
	key              uint64
	mills            []MillSignature

	recording bool
	history   []Record
	tips      string

	winner    Color
	scores    [4]int // wins per side, draws at index Draw
	elapsed   [3]int // seconds
	startTime time.Time
	timePoint int // seconds carried by a replayed command, -1 when absent
	moveStep  int // moves since the last removal
	steps     int
}

type Option func(p *Position)

// WithRules replaces the rule catalog that rule indices refer to.
func WithRules(catalog []Rule) Option {
	return func(p *Position) {
		if len(catalog) > 0 {
			p.catalog = catalog
		}
	}
}

// WithRule selects the starting rule by its 1-based catalog index.
func WithRule(index int) Option {
	return func(p *Position) {
		p.ruleIndex = index
	}
}

// WithClock replaces the time source used for elapsed-time bookkeeping.
func WithClock(clock func() time.Time) Option {
	return func(p *Position) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// NewPosition returns a Position in the Ready phase.
func NewPosition(options ...Option) (*Position, error) {
	p := &Position{
		catalog:   Rules,
		ruleIndex: DefaultRuleIndex,
		clock:     time.Now,
		recording: true,
	}
	for _, option := range options {
		option(p)
	}
	if err := p.SetRule(p.ruleIndex); err != nil {
		return nil, err
	}
	return p, nil
}

// SetRule switches to the catalog rule with the given 1-based index and resets the game.
func (p *Position) SetRule(index int) error {
	if index < 1 || index > len(p.catalog) {
		return fmt.Errorf("%w: no rule %d in a catalog of %d", ErrBadRule, index, len(p.catalog))
	}
	return p.setPosition(p.catalog[index-1], index)
}

// SetPosition switches to rule and reinitializes every field of the game.
func (p *Position) SetPosition(rule Rule) error {
	return p.setPosition(rule, RuleIndex(p.catalog, rule))
}

func (p *Position) setPosition(rule Rule, index int) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	p.rule = rule
	p.ruleIndex = index
	p.topology = TopologyFor(rule.HasObliqueLines)
	p.reinit()
	return nil
}

// Reset starts the current rule over. Scores are kept.
func (p *Position) Reset() {
	p.reinit()
}

func (p *Position) reinit() {
	p.board = [SquareCount]Piece{}
	p.key = 0
	p.sideToMove = Black
	p.phase = PhaseReady
	p.action = ActionPlace
	p.piecesOnBoard = [3]int{}
	p.piecesInHand = [3]int{0, p.rule.PiecesEachSide, p.rule.PiecesEachSide}
	p.piecesNeedRemove = 0
	p.currentSquare = 0
	p.move = MoveNone
	p.mills = nil
	p.winner = Nobody
	p.elapsed = [3]int{}
	p.startTime = time.Time{}
	p.timePoint = -1
	p.moveStep = 0
	p.steps = 0
	p.history = nil
	if p.recording {
		p.history = []Record{{
			Kind:      RecordRule,
			RuleIndex: p.ruleIndex,
			MaxSteps:  p.rule.MaxStepsLedToDraw,
			MaxTime:   p.rule.MaxTimeLedToLose,
		}}
	}
	p.updateTips()
}

// Start leaves the Ready phase. A finished game is reset first.
func (p *Position) Start() error {
	if p.phase == PhaseGameOver {
		p.reinit()
	}
	if p.phase != PhaseReady {
		return fmt.Errorf("cannot start: %w (phase %s)", ErrWrongAction, p.phase)
	}
	p.start()
	p.updateTips()
	return nil
}

func (p *Position) start() {
	p.phase = PhasePlacing
	p.startTime = p.clock()
}

// Clone returns an independent copy. History is only copied when recording.
func (p *Position) Clone() *Position {
	c := *p
	c.mills = slices.Clone(p.mills)
	c.history = slices.Clone(p.history)
	return &c
}

// searchCopy returns a copy that skips history and clock bookkeeping.
func (p *Position) searchCopy() *Position {
	c := *p
	c.mills = slices.Clone(p.mills)
	c.history = nil
	c.recording = false
	return &c
}

func (p *Position) Rule() Rule                { return p.rule }
func (p *Position) RuleNumber() int           { return p.ruleIndex }
func (p *Position) Topology() *Topology       { return p.topology }
func (p *Position) Phase() Phase              { return p.phase }
func (p *Position) Action() Action            { return p.action }
func (p *Position) SideToMove() Color         { return p.sideToMove }
func (p *Position) Opponent() Color           { return p.sideToMove.Opponent() }
func (p *Position) PiecesNeedRemove() int     { return p.piecesNeedRemove }
func (p *Position) CurrentSquare() Square     { return p.currentSquare }
func (p *Position) LastMove() Move            { return p.move }
func (p *Position) WinnerColor() Color        { return p.winner }
func (p *Position) Tips() string              { return p.tips }
func (p *Position) MoveStep() int             { return p.moveStep }
func (p *Position) Steps() int                { return p.steps }
func (p *Position) Draws() int                { return p.scores[Draw] }
func (p *Position) Mills() []MillSignature    { return slices.Clone(p.mills) }
func (p *Position) History() []Record         { return slices.Clone(p.history) }
func (p *Position) PieceAt(sq Square) Piece   { return p.board[sq] }
func (p *Position) Score(c Color) int         { return p.scores[c] }
func (p *Position) PiecesOnBoard(c Color) int { return p.piecesOnBoard[c] }
func (p *Position) PiecesInHand(c Color) int  { return p.piecesInHand[c] }
func (p *Position) Elapsed(c Color) int       { return p.elapsed[c] }

// HistoryText renders the history records as command strings.
func (p *Position) HistoryText() []string {
	lines := make([]string, len(p.history))
	for i, record := range p.history {
		lines[i] = record.String()
	}
	return lines
}

// String draws the board ring by ring, seat 1 first.
func (p *Position) String() string {
	var b strings.Builder
	for ring := 1; ring <= Rings; ring++ {
		for seat := 0; seat < Seats; seat++ {
			b.WriteString(p.board[square(ring, seat)].String())
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s %s, %s to move", p.phase, p.action, p.sideToMove)
	return b.String()
}

func (p *Position) changeSideToMove() {
	p.sideToMove = p.sideToMove.Opponent()
}

// DoNullMove passes the turn without touching the board.
func (p *Position) DoNullMove() {
	p.changeSideToMove()
}

// UndoNullMove reverts DoNullMove.
func (p *Position) UndoNullMove() {
	p.changeSideToMove()
}

// tick updates the mover's elapsed time and returns it. A time carried by a
// replayed command takes precedence over the clock.
func (p *Position) tick() int {
	if !p.phase.IsPlaying() || !p.recording {
		return 0
	}
	us, them := p.sideToMove, p.sideToMove.Opponent()
	if p.timePoint >= 0 {
		p.elapsed[us] = p.timePoint
		p.timePoint = -1
		// Later moves are timed from the replayed clock.
		p.startTime = p.clock().Add(-time.Duration(p.elapsed[Black]+p.elapsed[White]) * time.Second)
		return p.elapsed[us]
	}
	total := int(p.clock().Sub(p.startTime) / time.Second)
	p.elapsed[us] = max(total-p.elapsed[them], 0)
	return p.elapsed[us]
}

func (p *Position) appendRecord(record Record) {
	if p.recording {
		p.history = append(p.history, record)
	}
}
