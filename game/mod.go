package game

type StateHash uint64

// Game identifies the two players. It does not change once a game starts.
// Player1 and Player2 must be distinct: SeatOf resolves a shared identity to Seat1.
type Game struct {
	Player1 string
	Player2 string
}

// SeatOf returns the seat author plays from, or NoSeat for a stranger.
func (g Game) SeatOf(author string) Seat {
	switch author {
	case g.Player1:
		return Seat1
	case g.Player2:
		return Seat2
	default:
		return NoSeat
	}
}

// PlayerAt returns the identity sitting at seat.
func (g Game) PlayerAt(seat Seat) string {
	switch seat {
	case Seat1:
		return g.Player1
	case Seat2:
		return g.Player2
	default:
		return ""
	}
}
