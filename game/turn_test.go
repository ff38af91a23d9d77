package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWhoseTurn(t *testing.T) {
	t.Run("anyone may open", func(t *testing.T) {
		turn := WhoseTurn(testGame, Initial())
		require.True(t, turn.Either)
		require.True(t, turn.Allows("alice"))
		require.True(t, turn.Allows("bob"))
	})

	t.Run("player 2 opens when the rules say so", func(t *testing.T) {
		rules := NewStandardRules()
		rules.Opening = SecondPlayerStarts
		turn := rules.WhoseTurn(testGame, Initial())
		require.Equal(t, Turn{Player: "bob"}, turn)
		require.False(t, turn.Allows("alice"))
	})

	t.Run("created token off a rosette passes the turn", func(t *testing.T) {
		state := GameState{Moves: []Move{create("alice", 1)}}
		require.Equal(t, Turn{Player: "bob"}, WhoseTurn(testGame, state))
	})

	t.Run("created token on a rosette keeps the turn", func(t *testing.T) {
		state := GameState{Moves: []Move{create("bob", 4)}}
		require.Equal(t, Turn{Player: "bob", Rosette: true}, WhoseTurn(testGame, state))
	})

	t.Run("moved token on the shared rosette keeps the turn", func(t *testing.T) {
		state := GameState{Moves: []Move{moveToken("alice", 1, LaneShared, 2)}}
		require.Equal(t, Turn{Player: "alice", Rosette: true}, WhoseTurn(testGame, state))
	})

	t.Run("the split uses the real mover", func(t *testing.T) {
		state := GameState{Moves: []Move{moveToken("bob", 7, LaneShared, 2)}}
		require.Equal(t, Turn{Player: "bob", Rosette: true}, WhoseTurn(testGame, state),
			"Bob should land on his exit rosette")

		state = GameState{Moves: []Move{moveToken("alice", 7, LaneShared, 2)}}
		require.Equal(t, Turn{Player: "alice", Rosette: true}, WhoseTurn(testGame, state))

		state = GameState{Moves: []Move{moveToken("bob", 7, LaneShared, 1)}}
		require.Equal(t, Turn{Player: "alice"}, WhoseTurn(testGame, state))
	})

	t.Run("only the last move counts", func(t *testing.T) {
		state := GameState{Moves: []Move{create("bob", 4), create("bob", 3)}}
		require.Equal(t, Turn{Player: "alice"}, WhoseTurn(testGame, state))
	})
}
