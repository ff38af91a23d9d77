package game

import (
	"errors"
	"fmt"
)

// Cause classifies why a move was rejected.
type Cause int

const (
	CauseNone Cause = iota
	CauseNotAPlayer
	CauseMalformedMove
	CauseNotYourTurn
	CauseInvalidDistance
	CauseDestinationOccupied
	CauseOutOfTokens
	CauseNoTokenAtOrigin
)

func (c Cause) String() string {
	switch c {
	case CauseNotAPlayer:
		return "not_a_player"
	case CauseMalformedMove:
		return "malformed_move"
	case CauseNotYourTurn:
		return "not_your_turn"
	case CauseInvalidDistance:
		return "invalid_distance"
	case CauseDestinationOccupied:
		return "destination_occupied"
	case CauseOutOfTokens:
		return "out_of_tokens"
	case CauseNoTokenAtOrigin:
		return "no_token_at_origin"
	default:
		return "none"
	}
}

// Messages shown to players. They are part of the API: hosts display them verbatim.
const (
	MsgNotAPlayer          = "You are not a player in this game!"
	MsgUnknownMove         = "Unknown move type!"
	MsgNotYourTurnRosette  = "It is not your turn! ROSETTE"
	MsgNotYourTurn         = "It is not your turn! NON-ROSETTE"
	MsgSecondPlayerStarts  = "Player 2 must start"
	MsgOwnTokenAtTile      = "You can't move a token onto another of your tokens!"
	MsgOutOfTokens         = "You are out of tokens!"
	MsgNoTokenAtOrigin     = "There is not one of your tokens to move on the selected tile"
	MsgOvershootFromSplit  = "You must move off the board exactly! V3"
	MsgOvershootFromExit   = "You must move off the board exactly! V2"
	MsgOvershootFromLast   = "You must move off the board exactly! V1"
	msgDistanceTooLongFmt  = "You can't move more than %d tiles!"
	msgDistanceTooShortFmt = "You must move at least %d tile!"
)

// Rejection is returned by IsValid when a move breaks a rule.
type Rejection struct {
	Cause   Cause
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(cause Cause, msg string) *Rejection {
	return &Rejection{Cause: cause, Message: msg}
}

// CauseOf extracts the rejection cause from err, or CauseNone.
func CauseOf(err error) Cause {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Cause
	}
	return CauseNone
}

// IsValid checks next against the current game and state. It returns nil when
// the move may be played, or a *Rejection naming the first rule it breaks.
func (r *Rules) IsValid(next Move, game Game, state GameState) error {
	seat := game.SeatOf(next.Author)
	if seat == NoSeat {
		return reject(CauseNotAPlayer, MsgNotAPlayer)
	}
	// nil and pointer kinds land here too
	destination, ok := next.Destination(seat)
	if !ok {
		return reject(CauseMalformedMove, MsgUnknownMove)
	}

	if err := r.isPlayersTurn(next.Author, game, state); err != nil {
		return err
	}
	if err := r.isValidDistance(next.Kind.Steps()); err != nil {
		return err
	}

	if state.HasToken(seat, destination) {
		return reject(CauseDestinationOccupied, MsgOwnTokenAtTile)
	}

	switch k := next.Kind.(type) {
	case CreateToken:
		if len(state.Tokens(seat))+state.Home(seat) >= r.TokensPerPlayer {
			return reject(CauseOutOfTokens, MsgOutOfTokens)
		}
	case MoveToken:
		if !state.HasToken(seat, k.Origin()) {
			return reject(CauseNoTokenAtOrigin, MsgNoTokenAtOrigin)
		}
		if err := isntOvermoving(k.Origin(), k.Distance); err != nil {
			return err
		}
	}

	return nil
}

func (r *Rules) isPlayersTurn(author string, game Game, state GameState) error {
	turn := r.WhoseTurn(game, state)
	if turn.Allows(author) {
		return nil
	}
	switch {
	case len(state.Moves) == 0:
		return reject(CauseNotYourTurn, MsgSecondPlayerStarts)
	case turn.Rosette:
		// opponent landed on a rosette and plays again
		return reject(CauseNotYourTurn, MsgNotYourTurnRosette)
	default:
		return reject(CauseNotYourTurn, MsgNotYourTurn)
	}
}

// Zero is rejected: a throw of zero means the turn is lost, not that a token moves nowhere.
func (r *Rules) isValidDistance(d int) error {
	if d > r.MaxDistance {
		return reject(CauseInvalidDistance, fmt.Sprintf(msgDistanceTooLongFmt, r.MaxDistance))
	}
	if d < r.MinDistance {
		return reject(CauseInvalidDistance, fmt.Sprintf(msgDistanceTooShortFmt, r.MinDistance))
	}
	return nil
}

func isntOvermoving(origin Position, distance int) error {
	limit, ok := maxDistanceFrom(origin)
	if !ok || distance <= limit {
		return nil
	}
	switch limit {
	case 3:
		return reject(CauseInvalidDistance, MsgOvershootFromSplit)
	case 2:
		return reject(CauseInvalidDistance, MsgOvershootFromExit)
	default:
		return reject(CauseInvalidDistance, MsgOvershootFromLast)
	}
}
