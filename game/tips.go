package game

import "fmt"

func (p *Position) updateTips() {
	if !p.recording {
		return
	}
	us := p.sideToMove
	switch p.phase {
	case PhaseReady:
		p.tips = fmt.Sprintf("%s: %d pieces each, black places first", p.rule.Name, p.rule.PiecesEachSide)
	case PhasePlacing:
		if p.action == ActionRemove {
			p.tips = fmt.Sprintf("Mill! %s removes %d", us, p.piecesNeedRemove)
		} else {
			p.tips = fmt.Sprintf("%s to place, %d in hand", us, p.piecesInHand[us])
		}
	case PhaseMoving:
		switch p.action {
		case ActionRemove:
			p.tips = fmt.Sprintf("Mill! %s removes %d", us, p.piecesNeedRemove)
		case ActionPlace:
			p.tips = fmt.Sprintf("%s moves %s", us, p.currentSquare)
		default:
			p.tips = fmt.Sprintf("%s to select a piece", us)
		}
	case PhaseGameOver:
		if p.winner == Draw {
			p.tips = fmt.Sprintf("Draw. Score %d:%d, %d draws", p.scores[Black], p.scores[White], p.scores[Draw])
		} else {
			p.tips = fmt.Sprintf("%s wins. Score %d:%d, %d draws", p.winner, p.scores[Black], p.scores[White], p.scores[Draw])
		}
	}
}
