package game

import (
	"fmt"
	"slices"
)

// Rule selects one variant of the mill game. A Rule is immutable once a game
// has started; switching rules resets the Position.
type Rule struct {
	Name                     string `yaml:"name"`
	Description              string `yaml:"description"`
	PiecesEachSide           int    `yaml:"piecesEachSide"`
	PiecesAtLeast            int    `yaml:"piecesAtLeast"`
	HasObliqueLines          bool   `yaml:"hasObliqueLines"`
	HasBannedLocations       bool   `yaml:"hasBannedLocations"`
	IsDefenderMoveFirst      bool   `yaml:"isDefenderMoveFirst"`
	AllowRemoveMultiPieces   bool   `yaml:"allowRemoveMultiPiecesWhenCloseMultiMill"`
	AllowRemovePieceInMill   bool   `yaml:"allowRemovePieceInMill"`
	IsBlackLoseWhenBoardFull bool   `yaml:"isBlackLoseButNotDrawWhenBoardFull"`
	IsLoseWhenNoWay          bool   `yaml:"isLoseButNotChangeTurnWhenNoWay"`
	AllowFly                 bool   `yaml:"allowFlyWhenRemainThreePieces"`
	AllowRepeatedSameMill    bool   `yaml:"allowRemovePiecesRepeatedlyWhenCloseSameMill"`
	MaxStepsLedToDraw        int    `yaml:"maxStepsLedToDraw"`
	MaxTimeLedToLose         int    `yaml:"maxTimeLedToLose"` // minutes
}

// DefaultRuleIndex is the 1-based catalog index used by a fresh Position.
const DefaultRuleIndex = 2

// Rules is the built-in catalog. Command strings refer to it with 1-based indices.
var Rules = []Rule{
	{
		Name:                     "Nine Men's Morris",
		Description:              "Nine pieces per side, no diagonals, flying with three pieces left",
		PiecesEachSide:           9,
		PiecesAtLeast:            3,
		IsBlackLoseWhenBoardFull: true,
		IsLoseWhenNoWay:          true,
		AllowFly:                 true,
		AllowRepeatedSameMill:    true,
	},
	{
		Name:                     "Twelve Men's Morris",
		Description:              "Twelve pieces per side on a board with diagonals, a full board loses for black",
		PiecesEachSide:           12,
		PiecesAtLeast:            3,
		HasObliqueLines:          true,
		IsBlackLoseWhenBoardFull: true,
		IsLoseWhenNoWay:          true,
		AllowFly:                 true,
		AllowRepeatedSameMill:    true,
	},
	{
		Name:                     "Da San Qi",
		Description:              "Removed squares are banned while placing, the defender moves first, every closed mill removes",
		PiecesEachSide:           12,
		PiecesAtLeast:            3,
		HasObliqueLines:          true,
		HasBannedLocations:       true,
		IsDefenderMoveFirst:      true,
		AllowRemoveMultiPieces:   true,
		AllowRemovePieceInMill:   true,
		IsBlackLoseWhenBoardFull: false,
		IsLoseWhenNoWay:          false,
		AllowFly:                 false,
		AllowRepeatedSameMill:    false,
		MaxStepsLedToDraw:        50,
	},
	{
		Name:                     "Cheng San Qi",
		Description:              "Nine pieces per side without flying",
		PiecesEachSide:           9,
		PiecesAtLeast:            3,
		IsBlackLoseWhenBoardFull: true,
		IsLoseWhenNoWay:          true,
		AllowRepeatedSameMill:    true,
	},
}

// Validate rejects rules that cannot produce a consistent Position.
func (r Rule) Validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: missing name", ErrBadRule)
	case r.PiecesEachSide <= 0:
		return fmt.Errorf("%w: %q needs a positive piece count, got %d", ErrBadRule, r.Name, r.PiecesEachSide)
	case r.PiecesEachSide*2 > PlayableSquares:
		return fmt.Errorf("%w: %q places %d pieces on %d squares", ErrBadRule, r.Name, r.PiecesEachSide*2, PlayableSquares)
	case r.PiecesAtLeast <= 0 || r.PiecesAtLeast > r.PiecesEachSide:
		return fmt.Errorf("%w: %q minimum of %d pieces is out of range", ErrBadRule, r.Name, r.PiecesAtLeast)
	case r.MaxStepsLedToDraw < 0 || r.MaxStepsLedToDraw > 999:
		return fmt.Errorf("%w: %q step limit %d is out of range", ErrBadRule, r.Name, r.MaxStepsLedToDraw)
	case r.MaxTimeLedToLose < 0 || r.MaxTimeLedToLose > 99:
		return fmt.Errorf("%w: %q time limit %d is out of range", ErrBadRule, r.Name, r.MaxTimeLedToLose)
	}
	return nil
}

// RuleIndex returns the 1-based index of the rule in catalog, or 0 when absent.
func RuleIndex(catalog []Rule, rule Rule) int {
	return slices.Index(catalog, rule) + 1
}
