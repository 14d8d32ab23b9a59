package game

import "fmt"

// Each exported action validates everything before writing, so a returned
// error leaves the Position untouched. Tips are refreshed on every exit.

func (p *Position) finish(err error) error {
	if err == nil && p.phase.IsPlaying() {
		p.checkTimeOver()
	}
	p.updateTips()
	return err
}

// Place puts a piece from hand on sq while placing, or moves the selected
// piece to sq while moving. The first placement starts a Ready game.
func (p *Position) Place(sq Square) error {
	return p.finish(p.place(sq))
}

func (p *Position) place(sq Square) error {
	switch {
	case p.phase == PhaseGameOver:
		return fmt.Errorf("cannot place on %s: %w", sq, ErrNotPlaying)
	case p.action != ActionPlace:
		return fmt.Errorf("cannot place on %s: %w (expected %s)", sq, ErrWrongAction, p.action)
	case !sq.OnBoard():
		return fmt.Errorf("cannot place on %d: %w", sq, ErrOffBoard)
	case !p.board[sq].IsEmpty():
		return fmt.Errorf("cannot place on %s: %w", sq, ErrOccupied)
	case p.phase == PhaseMoving && !p.canFly(p.sideToMove) && !p.topology.IsAdjacent(p.currentSquare, sq):
		return fmt.Errorf("cannot move %s to %s: %w", p.currentSquare, sq, ErrNotAdjacent)
	}

	if p.phase == PhaseReady {
		p.start()
	}
	if p.phase == PhasePlacing {
		p.placeFromHand(sq)
	} else {
		p.movePiece(sq)
	}
	return nil
}

func (p *Position) placeFromHand(sq Square) {
	us := p.sideToMove
	piece := NewStone(us, p.rule.PiecesEachSide-p.piecesInHand[us]+1)
	p.piecesInHand[us]--
	p.piecesOnBoard[us]++
	p.board[sq] = piece
	p.toggle(sq, piece)
	p.move = PlaceMove(sq)
	p.appendRecord(Record{Kind: RecordPlace, To: sq, Seconds: p.tick()})
	p.steps++
	p.currentSquare = sq

	if n := p.addMills(sq); n > 0 && p.startRemoval(n) {
		return
	}
	if p.piecesInHand[Black] == 0 && p.piecesInHand[White] == 0 {
		if p.checkGameOver() {
			return
		}
		p.enterMoving()
		p.checkGameOver()
		return
	}
	p.changeSideToMove()
}

func (p *Position) movePiece(sq Square) {
	from := p.currentSquare
	piece := p.board[from]
	p.move = MakeMove(from, sq)
	p.appendRecord(Record{Kind: RecordMove, From: from, To: sq, Seconds: p.tick()})
	p.moveStep++
	p.steps++
	p.board[sq] = piece
	p.toggle(sq, piece)
	p.board[from] = NoPiece
	p.toggle(from, piece)
	p.currentSquare = sq

	if n := p.addMills(sq); n > 0 && p.startRemoval(n) {
		return
	}
	p.action = ActionSelect
	p.changeSideToMove()
	p.checkGameOver()
}

// startRemoval enters the Remove action for n closed mills. It reports false
// when the opponent has nothing left to take.
func (p *Position) startRemoval(n int) bool {
	quota := 1
	if p.rule.AllowRemoveMultiPieces {
		quota = n
	}
	quota = min(quota, p.piecesOnBoard[p.Opponent()])
	if quota == 0 {
		return false
	}
	p.piecesNeedRemove = quota
	p.action = ActionRemove
	return true
}

func (p *Position) enterMoving() {
	p.phase = PhaseMoving
	p.action = ActionSelect
	p.cleanBannedSquares()
	if p.rule.IsDefenderMoveFirst {
		p.sideToMove = White
	} else {
		p.sideToMove = Black
	}
}

func (p *Position) cleanBannedSquares() {
	if !p.rule.HasBannedLocations {
		return
	}
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if p.board[sq].IsBanned() {
			p.toggle(sq, BanPiece)
			p.board[sq] = NoPiece
		}
	}
}

func (p *Position) canFly(c Color) bool {
	return p.rule.AllowFly && p.piecesOnBoard[c] <= p.rule.PiecesAtLeast
}

// Select picks the piece on sq to be moved by the next Place.
func (p *Position) Select(sq Square) error {
	return p.finish(p.selectPiece(sq))
}

func (p *Position) selectPiece(sq Square) error {
	switch {
	case p.phase != PhaseMoving:
		return fmt.Errorf("cannot select %s: %w (phase %s)", sq, ErrWrongAction, p.phase)
	case p.action != ActionSelect && p.action != ActionPlace:
		return fmt.Errorf("cannot select %s: %w (expected %s)", sq, ErrWrongAction, p.action)
	case !sq.OnBoard():
		return fmt.Errorf("cannot select %d: %w", sq, ErrOffBoard)
	case p.board[sq].Owner() != p.sideToMove:
		return fmt.Errorf("cannot select %s: %w", sq, ErrNotOwner)
	}
	p.currentSquare = sq
	p.action = ActionPlace
	return nil
}

// Remove takes the opposing piece on sq after a mill was closed.
func (p *Position) Remove(sq Square) error {
	return p.finish(p.remove(sq))
}

func (p *Position) remove(sq Square) error {
	them := p.Opponent()
	switch {
	case !p.phase.IsPlaying():
		return fmt.Errorf("cannot remove %s: %w", sq, ErrNotPlaying)
	case p.action != ActionRemove:
		return fmt.Errorf("cannot remove %s: %w (expected %s)", sq, ErrWrongAction, p.action)
	case p.piecesNeedRemove <= 0:
		return fmt.Errorf("cannot remove %s: %w", sq, ErrNoRemoval)
	case !sq.OnBoard():
		return fmt.Errorf("cannot remove %d: %w", sq, ErrOffBoard)
	case p.board[sq].Owner() != them:
		return fmt.Errorf("cannot remove %s: %w", sq, ErrNotOwner)
	case !p.rule.AllowRemovePieceInMill && p.InHowManyMills(sq, them) > 0 && !p.IsAllInMills(them):
		return fmt.Errorf("cannot remove %s: %w", sq, ErrInMill)
	}

	p.toggle(sq, p.board[sq])
	if p.rule.HasBannedLocations && p.phase == PhasePlacing {
		p.board[sq] = BanPiece
		p.toggle(sq, BanPiece)
	} else {
		p.board[sq] = NoPiece
	}
	p.piecesOnBoard[them]--
	p.move = RemoveMove(sq)
	p.appendRecord(Record{Kind: RecordRemove, To: sq, Seconds: p.tick()})
	p.steps++
	p.moveStep = 0
	p.currentSquare = 0
	p.piecesNeedRemove--

	if p.checkGameOver() || p.piecesNeedRemove > 0 {
		return nil
	}

	switch {
	case p.phase == PhasePlacing && p.piecesInHand[Black] == 0 && p.piecesInHand[White] == 0:
		p.enterMoving()
	case p.phase == PhasePlacing:
		p.action = ActionPlace
		p.changeSideToMove()
	default:
		p.action = ActionSelect
		p.changeSideToMove()
	}
	p.checkGameOver()
	return nil
}

// GiveUp ends the game with loser resigning.
func (p *Position) GiveUp(loser Color) error {
	return p.finish(p.giveUp(loser))
}

func (p *Position) giveUp(loser Color) error {
	switch {
	case !p.phase.IsPlaying():
		return fmt.Errorf("cannot give up: %w", ErrNotPlaying)
	case loser != Black && loser != White:
		return fmt.Errorf("cannot give up for %s: %w", loser, ErrNotOwner)
	}
	p.appendRecord(Record{Kind: RecordResign, Player: loser})
	p.gameOver(loser.Opponent(), ReasonResign)
	return nil
}

// DoMove applies an encoded move: a Move selects its origin first.
func (p *Position) DoMove(m Move) error {
	switch m.Type() {
	case MoveTypeRemove:
		return p.Remove(m.To())
	case MoveTypeMove:
		current, action := p.currentSquare, p.action
		if err := p.selectPiece(m.From()); err != nil {
			return p.finish(err)
		}
		if err := p.place(m.To()); err != nil {
			p.currentSquare, p.action = current, action
			return p.finish(err)
		}
		return p.finish(nil)
	default:
		return p.Place(m.To())
	}
}
