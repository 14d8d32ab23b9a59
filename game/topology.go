package game

import (
	"fmt"
	"slices"
)

// Square indexes a padded 5x8 grid. Rows 1..3 are the rings (inner to outer),
// columns are the 8 seats of a ring clockwise from the top middle point.
// Rows 0 and 4 are padding so ring arithmetic never leaves the array.
type Square int

const (
	Rings           = 3
	Seats           = 8
	SquareCount     = (Rings + 2) * Seats
	SquareBegin     = Square(Seats)
	SquareEnd       = Square(Seats * (Rings + 1))
	PlayableSquares = Rings * Seats
)

// Direction of a single step.
type Direction int

const (
	Clockwise Direction = iota
	Anticlockwise
	Inward
	Outward
	directionCount
)

// linesPerSquare is the number of candidate mill lines through one square:
// the radial line across the rings and the two lines along the ring.
const linesPerSquare = 3

// OnBoard reports whether sq is a playable square.
func (sq Square) OnBoard() bool {
	return sq >= SquareBegin && sq < SquareEnd
}

// Polar returns the 1-based ring (file) and seat (rank) of sq.
func (sq Square) Polar() (file, rank int) {
	return int(sq) / Seats, int(sq)%Seats + 1
}

// FromPolar maps 1-based (file, rank) coordinates to a square.
func FromPolar(file, rank int) (Square, error) {
	if file < 1 || file > Rings || rank < 1 || rank > Seats {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOffBoard, file, rank)
	}
	return Square(file*Seats + rank - 1), nil
}

func (sq Square) String() string {
	if !sq.OnBoard() {
		return "--"
	}
	file, rank := sq.Polar()
	return fmt.Sprintf("(%d,%d)", file, rank)
}

func (sq Square) ring() int { return int(sq) / Seats }
func (sq Square) seat() int { return int(sq) % Seats }

func square(ring, seat int) Square {
	return Square(ring*Seats + (seat+Seats)%Seats)
}

// Topology holds the static adjacency and mill tables of one board shape.
// Values are read-only after construction and may be shared between
// positions and search goroutines.
type Topology struct {
	oblique   bool
	adjacency [SquareCount][directionCount]Square
	mills     [SquareCount][linesPerSquare][2]Square
}

var topologies = [2]*Topology{newTopology(false), newTopology(true)}

// TopologyFor returns the shared topology for the given line layout.
func TopologyFor(hasObliqueLines bool) *Topology {
	if hasObliqueLines {
		return topologies[1]
	}
	return topologies[0]
}

func newTopology(oblique bool) *Topology {
	t := &Topology{oblique: oblique}
	for sq := SquareBegin; sq < SquareEnd; sq++ {
		ring, seat := sq.ring(), sq.seat()
		radial := oblique || seat%2 == 0

		t.adjacency[sq][Clockwise] = square(ring, seat+1)
		t.adjacency[sq][Anticlockwise] = square(ring, seat-1)
		if radial && ring > 1 {
			t.adjacency[sq][Inward] = square(ring-1, seat)
		}
		if radial && ring < Rings {
			t.adjacency[sq][Outward] = square(ring+1, seat)
		}

		if radial {
			others := make([]Square, 0, 2)
			for r := 1; r <= Rings; r++ {
				if r != ring {
					others = append(others, square(r, seat))
				}
			}
			t.mills[sq][0] = [2]Square{others[0], others[1]}
		}
		if seat%2 == 0 {
			// Middle point of a side.
			t.mills[sq][1] = [2]Square{square(ring, seat+1), square(ring, seat-1)}
		} else {
			// Corner: one line on each side it joins.
			t.mills[sq][1] = [2]Square{square(ring, seat-2), square(ring, seat-1)}
			t.mills[sq][2] = [2]Square{square(ring, seat+1), square(ring, seat+2)}
		}
	}
	return t
}

// HasObliqueLines reports whether the corners are joined across the rings.
func (t *Topology) HasObliqueLines() bool { return t.oblique }

// Neighbor returns the square one step from sq in direction d, or 0.
func (t *Topology) Neighbor(sq Square, d Direction) Square {
	if !sq.OnBoard() || d < 0 || d >= directionCount {
		return 0
	}
	return t.adjacency[sq][d]
}

// Neighbors returns the squares reachable from sq in one step.
func (t *Topology) Neighbors(sq Square) []Square {
	if !sq.OnBoard() {
		return nil
	}
	neighbors := make([]Square, 0, directionCount)
	for _, n := range t.adjacency[sq] {
		if n != 0 {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// IsAdjacent reports whether a single step leads from one square to the other.
func (t *Topology) IsAdjacent(from, to Square) bool {
	if !from.OnBoard() || !to.OnBoard() {
		return false
	}
	return slices.Index(t.adjacency[from][:], to) >= 0
}

// MillLines returns, for each line through sq, the two other squares of the line.
func (t *Topology) MillLines(sq Square) [][2]Square {
	if !sq.OnBoard() {
		return nil
	}
	lines := make([][2]Square, 0, linesPerSquare)
	for _, line := range t.mills[sq] {
		if line[0] != 0 {
			lines = append(lines, line)
		}
	}
	return lines
}
