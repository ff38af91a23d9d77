package game

import "fmt"

// Seat identifies which side of the board a player sits on.
type Seat int

const (
	NoSeat Seat = iota
	Seat1
	Seat2
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	switch s {
	case Seat1:
		return Seat2
	case Seat2:
		return Seat1
	default:
		return NoSeat
	}
}

func (s Seat) String() string {
	switch s {
	case Seat1:
		return "P1"
	case Seat2:
		return "P2"
	default:
		return "none"
	}
}

// Lanes, indexed by Position.Y.
const (
	LaneP1     = 0
	LaneShared = 1
	LaneP2     = 2
)

// Position is a cell on the board. Y selects the lane, X is the offset inside it.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

var (
	entryP1 = Position{4, LaneP1}
	entryP2 = Position{4, LaneP2}

	mergeP1 = Position{0, LaneP1}
	mergeP2 = Position{0, LaneP2}
	split   = Position{7, LaneShared}

	homeP1 = Position{5, LaneP1}
	homeP2 = Position{5, LaneP2}
)

var rosettes = map[Position]bool{
	{0, LaneP1}:     true,
	{0, LaneP2}:     true,
	{3, LaneShared}: true,
	{6, LaneP1}:     true,
	{6, LaneP2}:     true,
}

// EntryPoint is the off-board cell new tokens start moving from.
func EntryPoint(seat Seat) Position {
	if seat == Seat2 {
		return entryP2
	}
	return entryP1
}

// HomeCell is the cell a token must land on exactly to go home.
func HomeCell(seat Seat) Position {
	if seat == Seat2 {
		return homeP2
	}
	return homeP1
}

// Step advances a position by a single cell. The mover only matters at the split.
func Step(p Position, mover Seat) Position {
	switch {
	case p == mergeP1 || p == mergeP2:
		return Position{p.X, LaneShared}
	case p == split:
		if mover == Seat1 {
			return Position{p.X, LaneP1}
		}
		return Position{p.X, LaneP2}
	case p.Y == LaneShared:
		return Position{p.X + 1, p.Y}
	default:
		return Position{p.X - 1, p.Y}
	}
}

// Advance applies Step distance times. A non-positive distance leaves p unchanged.
func Advance(p Position, distance int, mover Seat) Position {
	for i := 0; i < distance; i++ {
		p = Step(p, mover)
	}
	return p
}

// IsHoming reports whether a token at p moved distance cells by mover lands on a home cell.
func IsHoming(p Position, distance int, mover Seat) bool {
	dest := Advance(p, distance, mover)
	return dest == homeP1 || dest == homeP2
}

// IsRosette reports whether landing on p grants another turn.
func IsRosette(p Position) bool {
	return rosettes[p]
}

// maxDistanceFrom returns how far a token may travel from origin without
// overshooting home, and false when only the global bound applies.
func maxDistanceFrom(origin Position) (int, bool) {
	switch origin {
	case split:
		return 3, true
	case Position{7, LaneP1}, Position{7, LaneP2}:
		return 2, true
	case Position{6, LaneP1}, Position{6, LaneP2}:
		return 1, true
	}
	return 0, false
}

// OnBoard reports whether p is a cell a token can rest on.
func OnBoard(p Position) bool {
	switch p.Y {
	case LaneShared:
		return p.X >= 0 && p.X <= 7
	case LaneP1, LaneP2:
		return (p.X >= 0 && p.X <= 3) || p.X == 6 || p.X == 7
	}
	return false
}
