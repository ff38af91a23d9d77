package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/qubist/hc-ur/game"

	"github.com/stretchr/testify/require"
)

var testGame = game.Game{Player1: "alice", Player2: "bob"}

func TestNewMoveMetric(t *testing.T) {
	m := NewMoveMetric(1, game.Move{Author: "bob", Kind: game.CreateToken{Distance: 4}}, game.Seat2)
	require.Equal(t, MoveMetric{
		Step: 1, Author: "bob", Seat: game.Seat2, Kind: "create", Distance: 4,
		Landing: game.Position{X: 0, Y: game.LaneP2}, Rosette: true,
	}, m)

	m = NewMoveMetric(2, game.Move{Author: "alice", Kind: game.MoveToken{X: 6, Y: 0, Distance: 1}}, game.Seat1)
	require.True(t, m.Homed)
	require.False(t, m.Rosette, "Home is not a rosette")

	m = NewMoveMetric(3, game.Move{Author: "mallory", Kind: game.CreateToken{Distance: 2}}, game.NoSeat)
	require.Equal(t, MoveMetric{Step: 3, Author: "mallory"}, m)

	m = NewMoveMetric(4, game.Move{Author: "alice", Kind: &game.CreateToken{Distance: 2}}, game.Seat1)
	require.Equal(t, MoveMetric{Step: 4, Author: "alice", Seat: game.Seat1}, m)
}

func TestSummarize(t *testing.T) {
	moves := []game.Move{
		{Author: "bob", Kind: game.CreateToken{Distance: 4}},
		{Author: "bob", Kind: game.MoveToken{X: 0, Y: 2, Distance: 1}},
		{Author: "alice", Kind: game.CreateToken{Distance: 3}},
	}
	gm := Summarize("g1", testGame, FromLog(testGame, moves))
	require.Equal(t, GameMetric{
		ID: "g1", Player1: "alice", Player2: "bob",
		TotalMoves: 3, P1Moves: 1, P2Moves: 2, Rosettes: 1,
	}, gm)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.AddMove(1, game.Move{Author: "alice", Kind: game.CreateToken{Distance: 1}}, game.Seat1)
	c.AddRejection(game.CauseNotYourTurn)
	c.AddRejection(game.CauseNotYourTurn)

	require.Len(t, c.Moves(), 1)
	require.Equal(t, map[game.Cause]int{game.CauseNotYourTurn: 2}, c.Rejections())

	d := NewDummyCollector()
	d.AddRejection(game.CauseNotYourTurn)
	require.Empty(t, d.Moves())
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	moves := FromLog(testGame, []game.Move{{Author: "bob", Kind: game.CreateToken{Distance: 4}}})
	require.NoError(t, w.WriteGameRecords([]GameMetric{Summarize("g1", testGame, moves)}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: "g1", MoveMetric: moves[0]}}))

	f, err := os.Open(filepath.Join(dir, "move_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"g1", "1", "bob", "P2", "create", "4", "0", "2", "false", "true"}, rows[1])

	f2, err := os.Open(filepath.Join(dir, "game_records.csv"))
	require.NoError(t, err)
	defer f2.Close()
	rows, err = csv.NewReader(f2).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "g1", rows[1][0])
	require.Equal(t, "1", rows[1][5])
}

func TestWriterErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	err = w.WriteGameRecords(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "game_records.csv")
}
