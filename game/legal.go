package game

// LegalMoves returns every move author could play with a throw of distance,
// in a stable order: entering a new token first, then the tokens already on
// the board in the order they were placed.
// It returns nil when author has nothing to play.
func (r *Rules) LegalMoves(game Game, state GameState, author string, distance int) []Move {
	seat := game.SeatOf(author)
	if seat == NoSeat {
		return nil
	}

	candidates := []Move{{Author: author, Kind: CreateToken{Distance: distance}}}
	for _, t := range state.Tokens(seat) {
		candidates = append(candidates, Move{
			Author: author,
			Kind:   MoveToken{X: t.X, Y: t.Y, Distance: distance},
		})
	}

	var moves []Move
	for _, m := range candidates {
		if r.IsValid(m, game, state) == nil {
			moves = append(moves, m)
		}
	}
	return moves
}
