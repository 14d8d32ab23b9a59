package game

import "golang.org/x/exp/rand"

// Key layout: the low 56 bits accumulate Zobrist constants of the board,
// the high 8 bits carry the context a transposition entry depends on.
const (
	keyMiscShift = 56
	positionMask = uint64(1)<<keyMiscShift - 1

	miscSideBit     = 1 << 0
	miscRemoveBit   = 1 << 1
	miscQuotaShift  = 2
	miscQuotaMask   = 0x3
	miscInHandShift = 4
	miscInHandMask  = 0xF

	zobristSeed = 0x6d696c6c
)

var zobrist = newZobrist(zobristSeed)

// newZobrist draws one 56-bit constant per square and piece column
// (empty, black, white, banned) from a fixed seed so keys are stable across runs.
func newZobrist(seed uint64) [SquareCount][4]uint64 {
	var table [SquareCount][4]uint64
	rng := rand.New(rand.NewSource(seed))
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		for i := range table[sq] {
			table[sq][i] = rng.Uint64() & positionMask
		}
	}
	return table
}

// toggle XORs piece at sq in or out of the positional key.
func (p *Position) toggle(sq Square, piece Piece) {
	p.key ^= zobrist[sq][piece.zobristIndex()]
}

// PositionKey returns the positional part of the key (low 56 bits).
func (p *Position) PositionKey() uint64 {
	return p.key
}

// Key returns the full 64-bit key including side to move, pending removal,
// removal quota and black's pieces in hand.
func (p *Position) Key() uint64 {
	var misc uint64
	if p.sideToMove == White {
		misc |= miscSideBit
	}
	if p.action == ActionRemove {
		misc |= miscRemoveBit
	}
	misc |= uint64(p.piecesNeedRemove&miscQuotaMask) << miscQuotaShift
	misc |= uint64(p.piecesInHand[Black]&miscInHandMask) << miscInHandShift
	return p.key&positionMask | misc<<keyMiscShift
}

// NextPrimaryKey predicts the positional key after m without applying it.
func (p *Position) NextPrimaryKey(m Move) uint64 {
	key := p.key
	to := m.To()
	switch m.Type() {
	case MoveTypeRemove:
		piece := p.board[to]
		key ^= zobrist[to][piece.zobristIndex()]
		if p.rule.HasBannedLocations && p.phase == PhasePlacing {
			key ^= zobrist[to][BanPiece.zobristIndex()]
		}
	case MoveTypeMove:
		piece := p.board[m.From()]
		key ^= zobrist[m.From()][piece.zobristIndex()]
		key ^= zobrist[to][piece.zobristIndex()]
	default:
		key ^= zobrist[to][NewStone(p.sideToMove, 0).zobristIndex()]
	}
	return key
}

// computeKey rebuilds the positional key from the board.
func (p *Position) computeKey() uint64 {
	var key uint64
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		if !p.board[sq].IsEmpty() {
			key ^= zobrist[sq][p.board[sq].zobristIndex()]
		}
	}
	return key
}
