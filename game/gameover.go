package game

import "github.com/rs/zerolog/log"

// CheckGameOver evaluates the end conditions and reports whether the game is
// over. Repeated calls in the same state give the same answer.
func (p *Position) CheckGameOver() bool {
	over := p.checkGameOver()
	p.updateTips()
	return over
}

func (p *Position) checkGameOver() bool {
	if !p.phase.IsPlaying() {
		return true
	}

	if p.checkTimeOver() {
		return true
	}

	if p.rule.MaxStepsLedToDraw > 0 && p.moveStep > p.rule.MaxStepsLedToDraw {
		p.gameOver(Draw, ReasonStepsOver)
		return true
	}

	for _, c := range []Color{Black, White} {
		if p.piecesOnBoard[c]+p.piecesInHand[c] < p.rule.PiecesAtLeast {
			p.gameOver(c.Opponent(), ReasonFewPieces)
			return true
		}
	}

	if p.piecesOnBoard[Black]+p.piecesOnBoard[White] >= PlayableSquares {
		if p.rule.IsBlackLoseWhenBoardFull {
			p.gameOver(White, ReasonBoardFull)
		} else {
			p.gameOver(Draw, ReasonBoardFull)
		}
		return true
	}

	if p.phase == PhaseMoving && p.action == ActionSelect && p.isAllSurrounded(p.sideToMove) {
		if p.rule.IsLoseWhenNoWay {
			p.gameOver(p.Opponent(), ReasonNoWay)
			return true
		}
		log.Debug().Msgf("%s has no way to go, turn passes to %s", p.sideToMove, p.Opponent())
		p.changeSideToMove()
	}

	return false
}

func (p *Position) checkTimeOver() bool {
	if p.rule.MaxTimeLedToLose <= 0 {
		return false
	}
	limit := p.rule.MaxTimeLedToLose * 60
	for _, c := range []Color{Black, White} {
		if p.elapsed[c] > limit {
			p.gameOver(c.Opponent(), ReasonTimeOver)
			return true
		}
	}
	return false
}

// isAllSurrounded reports whether no stone of c can step anywhere. A side
// allowed to fly is never surrounded.
func (p *Position) isAllSurrounded(c Color) bool {
	if p.piecesOnBoard[Black]+p.piecesOnBoard[White] >= PlayableSquares {
		return true
	}
	if p.canFly(c) {
		return false
	}
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].Owner() != c {
			continue
		}
		for _, n := range p.topology.Neighbors(sq) {
			if p.board[n].IsEmpty() {
				return false
			}
		}
	}
	return true
}

// gameOver is the only place a game ends, so scores are awarded exactly once.
func (p *Position) gameOver(winner Color, reason OverReason) {
	p.phase = PhaseGameOver
	p.winner = winner
	p.piecesNeedRemove = 0
	p.scores[winner]++
	if reason != ReasonResign {
		p.appendRecord(Record{Kind: RecordResult, Player: winner, Reason: reason})
	}
	log.Debug().Msgf("game over after %d steps: %s (%s)", p.steps, winner, reason)
}
