package game

// Turn says who may play next. Either is set before the first move of an
// open game; otherwise Player names the only author allowed to move.
type Turn struct {
	Either bool
	Player string
	// Rosette is set when Player keeps the turn because their last move
	// landed on a rosette.
	Rosette bool
}

// Allows reports whether author may play now.
func (t Turn) Allows(author string) bool {
	return t.Either || t.Player == author
}

// WhoseTurn replays the last logged move to decide who moves next. The turn
// is never stored, so it cannot drift from the log.
func (r *Rules) WhoseTurn(game Game, state GameState) Turn {
	last, ok := state.LastMove()
	if !ok {
		if r.Opening == SecondPlayerStarts {
			return Turn{Player: game.Player2}
		}
		return Turn{Either: true}
	}

	seat := game.SeatOf(last.Author)
	if dest, ok := last.Destination(seat); ok && seat != NoSeat && IsRosette(dest) {
		return Turn{Player: last.Author, Rosette: true}
	}
	return Turn{Player: game.PlayerAt(seat.Other())}
}
