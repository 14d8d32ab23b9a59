package game

import "fmt"

type RecordKind int

const (
	RecordRule RecordKind = iota
	RecordPlace
	RecordMove
	RecordRemove
	RecordResign
	RecordResult
)

// OverReason tells why a game ended.
type OverReason int

const (
	ReasonNone OverReason = iota
	ReasonTimeOver
	ReasonStepsOver
	ReasonFewPieces
	ReasonBoardFull
	ReasonNoWay
	ReasonResign
)

func (r OverReason) String() string {
	switch r {
	case ReasonTimeOver:
		return "time over"
	case ReasonStepsOver:
		return "step limit"
	case ReasonFewPieces:
		return "too few pieces"
	case ReasonBoardFull:
		return "board full"
	case ReasonNoWay:
		return "no way to go"
	case ReasonResign:
		return "resignation"
	default:
		return "none"
	}
}

// Record is one entry of the game history. Squares are kept structured so
// symmetry transforms can relabel them; text is rendered on demand.
type Record struct {
	Kind      RecordKind
	RuleIndex int
	MaxSteps  int
	MaxTime   int
	From      Square
	To        Square
	Seconds   int
	Player    Color // resigning side or the winner of a result
	Reason    OverReason
}

func clockText(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (r Record) String() string {
	switch r.Kind {
	case RecordRule:
		return fmt.Sprintf("r%1d s%03d t%02d", r.RuleIndex, r.MaxSteps, r.MaxTime)
	case RecordPlace:
		return fmt.Sprintf("%s %s", r.To, clockText(r.Seconds))
	case RecordMove:
		return fmt.Sprintf("%s->%s %s", r.From, r.To, clockText(r.Seconds))
	case RecordRemove:
		return fmt.Sprintf("-%s %s", r.To, clockText(r.Seconds))
	case RecordResign:
		return fmt.Sprintf("Player%d give up!", r.Player)
	case RecordResult:
		switch r.Reason {
		case ReasonTimeOver:
			return fmt.Sprintf("Time over. Player%d win!", r.Player)
		case ReasonStepsOver:
			return "Steps over. In draw!"
		case ReasonBoardFull:
			if r.Player == Draw {
				return "Full. In draw!"
			}
			return fmt.Sprintf("Player%d win!", r.Player)
		case ReasonNoWay:
			return fmt.Sprintf("Player%d no way to go. Player%d win!", r.Player.Opponent(), r.Player)
		default:
			return fmt.Sprintf("Player%d win!", r.Player)
		}
	}
	return ""
}

func (r Record) remap(f func(Square) Square) Record {
	if r.From.OnBoard() {
		r.From = f(r.From)
	}
	if r.To.OnBoard() {
		r.To = f(r.To)
	}
	return r
}
