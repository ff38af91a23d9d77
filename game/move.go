package game

import "fmt"

// MoveKind is one of CreateToken or MoveToken. The set is closed: every
// switch over a MoveKind handles both variants.
type MoveKind interface {
	// Steps is how many cells the token travels.
	Steps() int
	isMoveKind()
}

// CreateToken brings a new token onto the board from the entry point.
type CreateToken struct {
	Distance int
}

// MoveToken advances the token currently at (X, Y).
type MoveToken struct {
	X        int
	Y        int
	Distance int
}

func (c CreateToken) Steps() int { return c.Distance }
func (m MoveToken) Steps() int   { return m.Distance }

func (CreateToken) isMoveKind() {}
func (MoveToken) isMoveKind()   {}

// Origin is the cell the token starts from.
func (m MoveToken) Origin() Position {
	return Position{m.X, m.Y}
}

func (c CreateToken) String() string {
	return fmt.Sprintf("create+%d", c.Distance)
}

func (m MoveToken) String() string {
	return fmt.Sprintf("%s+%d", m.Origin(), m.Distance)
}

// Move represents a move in the game. Moves are values and never change once logged.
type Move struct {
	Author string
	Kind   MoveKind
}

func (m Move) String() string {
	return fmt.Sprintf("%s:%v", m.Author, m.Kind)
}

// Destination computes where the moved token lands when played from seat.
// It reports false when Kind is neither a CreateToken nor a MoveToken value.
func (m Move) Destination(seat Seat) (Position, bool) {
	switch k := m.Kind.(type) {
	case CreateToken:
		return Advance(EntryPoint(seat), k.Distance, seat), true
	case MoveToken:
		return Advance(k.Origin(), k.Distance, seat), true
	}
	return Position{}, false
}
