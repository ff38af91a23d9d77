package game

import (
	"fmt"

	"github.com/qubist/hc-ur/meta"
)

// Opening decides who may play the very first move.
type Opening int

const (
	// OpenStart lets either player make the first move.
	OpenStart Opening = iota
	// SecondPlayerStarts makes the invited player (player 2) open the game.
	SecondPlayerStarts
)

func (o Opening) String() string {
	switch o {
	case OpenStart:
		return "open"
	case SecondPlayerStarts:
		return "player2_starts"
	default:
		return fmt.Sprintf("Opening(%d)", int(o))
	}
}

func (o Opening) MarshalText() ([]byte, error) {
	switch o {
	case OpenStart, SecondPlayerStarts:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("unknown opening %d", int(o))
}

func (o *Opening) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "open":
		*o = OpenStart
	case "player2_starts":
		*o = SecondPlayerStarts
	default:
		return fmt.Errorf("unknown opening %q", text)
	}
	return nil
}

type Rules struct {
	TokensPerPlayer int
	MinDistance     int
	MaxDistance     int
	Opening         Opening
}

func NewStandardRules() *Rules {
	return &Rules{
		TokensPerPlayer: meta.TOKENS_PER_PLAYER,
		MinDistance:     meta.MIN_DISTANCE,
		MaxDistance:     meta.MAX_DISTANCE,
		Opening:         OpenStart,
	}
}

var standard = NewStandardRules()

// WhoseTurn resolves the turn under the standard rules.
func WhoseTurn(game Game, state GameState) Turn {
	return standard.WhoseTurn(game, state)
}

// IsValid checks next against the standard rules.
func IsValid(next Move, game Game, state GameState) error {
	return standard.IsValid(next, game, state)
}

// LegalMoves lists author's legal moves for a throw under the standard rules.
func LegalMoves(game Game, state GameState, author string, distance int) []Move {
	return standard.LegalMoves(game, state, author, distance)
}
