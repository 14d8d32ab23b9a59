package game

import "fmt"

// Color identifies a side. Draw is only ever used as a game result.
type Color uint8

const (
	Nobody Color = iota
	Black
	White
	Draw
)

// Opponent returns the other side. Nobody and Draw have no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Nobody
	}
}

// Player returns the name used by searchers and the command protocol ("Player1", "Player2").
func (c Color) Player() string {
	if c != Black && c != White {
		return ""
	}
	return fmt.Sprintf("Player%d", c)
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Draw:
		return "Draw"
	default:
		return "Nobody"
	}
}

func colorOfPlayer(player string) Color {
	switch player {
	case Black.Player():
		return Black
	case White.Player():
		return White
	default:
		return Nobody
	}
}

type PieceKind uint8

const (
	Empty PieceKind = iota
	Banned
	Stone
)

const (
	playerShift = 4
	banCode     = 0x0F
)

// Piece is the content of one square: empty, banned, or a stone with an owner
// and a per-owner sequence number (display only).
type Piece struct {
	kind   PieceKind
	owner  Color
	number uint8
}

var (
	NoPiece  = Piece{}
	BanPiece = Piece{kind: Banned}
)

func NewStone(owner Color, number int) Piece {
	return Piece{kind: Stone, owner: owner, number: uint8(number)}
}

func (p Piece) Kind() PieceKind { return p.kind }
func (p Piece) IsEmpty() bool   { return p.kind == Empty }
func (p Piece) IsBanned() bool  { return p.kind == Banned }
func (p Piece) Number() int     { return int(p.number) }

// Owner returns the owning side of a stone, Nobody otherwise.
func (p Piece) Owner() Color {
	if p.kind != Stone {
		return Nobody
	}
	return p.owner
}

// Code packs the piece into its display byte: owner in the high nibble and
// sequence number in the low one (0x11 is black stone 1, 0x0F is banned).
func (p Piece) Code() uint8 {
	switch p.kind {
	case Banned:
		return banCode
	case Stone:
		return uint8(p.owner)<<playerShift | p.number
	default:
		return 0
	}
}

// zobristIndex selects the hash column: 0 empty, 1 black, 2 white, 3 banned.
func (p Piece) zobristIndex() int {
	switch p.kind {
	case Stone:
		return int(p.owner)
	case Banned:
		return 3
	default:
		return 0
	}
}

func (p Piece) String() string {
	switch p.kind {
	case Banned:
		return "X"
	case Stone:
		if p.owner == Black {
			return "@"
		}
		return "O"
	default:
		return "*"
	}
}
