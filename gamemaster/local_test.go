package gamemaster

import (
	"errors"
	"sync"
	"testing"

	"github.com/qubist/hc-ur/game"
	"github.com/qubist/hc-ur/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testGame = game.Game{Player1: "alice", Player2: "bob"}

func create(author string, d int) game.Move {
	return game.Move{Author: author, Kind: game.CreateToken{Distance: d}}
}

func newTestEngine(options ...Option) *Engine {
	options = append([]Option{WithLogger(zerolog.Nop())}, options...)
	return NewEngine("test", testGame, options...)
}

type memoryStore struct {
	saved []game.GameState
	err   error
}

func (m *memoryStore) SaveState(id string, g game.Game, state game.GameState) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, state)
	return nil
}

func TestLocalEngineInit(t *testing.T) {
	engine := newTestEngine()
	state, getUpdate := engine.Init()

	require.Empty(t, state.Moves)
	require.True(t, engine.Turn().Either)

	_, ok := getUpdate()
	require.False(t, ok, "No update before a move is played")
}

func TestLocalEnginePlay_ValidMove(t *testing.T) {
	engine := newTestEngine()
	_, getUpdate := engine.Init()

	state, err := engine.Play(create("alice", 1))
	require.NoError(t, err)
	require.Equal(t, []game.Position{{X: 3, Y: game.LaneP1}}, state.P1Tokens)

	u, ok := getUpdate()
	require.True(t, ok, "Expected an update after playing a move")
	require.Equal(t, create("alice", 1), u.Move)
	require.Equal(t, state.Hash(), u.Hash)
	require.Equal(t, game.Turn{Player: "bob"}, engine.Turn())
}

func TestLocalEnginePlay_IllegalMove(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Play(create("alice", 1))
	require.NoError(t, err)

	state, err := engine.Play(create("alice", 2))
	require.Equal(t, game.CauseNotYourTurn, game.CauseOf(err))
	require.EqualError(t, err, game.MsgNotYourTurn)
	require.Len(t, state.Moves, 1, "Rejected moves are not logged")
	require.Len(t, engine.State().Moves, 1)
}

func TestLocalEnginePlayExpecting(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.PlayExpecting(0, create("bob", 2))
	require.NoError(t, err)

	_, err = engine.PlayExpecting(0, create("alice", 2))
	require.ErrorIs(t, err, ErrStaleState)

	_, err = engine.PlayExpecting(1, create("alice", 2))
	require.NoError(t, err)
}

func TestLocalEngineStore(t *testing.T) {
	t.Run("every accepted move is stored", func(t *testing.T) {
		store := &memoryStore{}
		engine := newTestEngine(WithStore(store))

		_, err := engine.Play(create("bob", 4))
		require.NoError(t, err)
		_, err = engine.Play(create("alice", 1))
		require.Error(t, err)
		_, err = engine.Play(create("bob", 1))
		require.NoError(t, err)

		require.Len(t, store.saved, 2)
		require.Equal(t, engine.State(), store.saved[1])
	})

	t.Run("a failed save keeps the previous state", func(t *testing.T) {
		boom := errors.New("disk full")
		engine := newTestEngine(WithStore(&memoryStore{err: boom}))

		_, err := engine.Play(create("bob", 4))
		require.ErrorIs(t, err, boom)
		require.Empty(t, engine.State().Moves)
	})
}

func TestResume(t *testing.T) {
	t.Run("valid log", func(t *testing.T) {
		moves := []game.Move{create("bob", 4), create("bob", 3), create("alice", 2)}
		engine, err := Resume("test", testGame, moves, WithLogger(zerolog.Nop()))
		require.NoError(t, err)
		require.Equal(t, game.Replay(testGame, moves), engine.State())
		require.Equal(t, game.Turn{Player: "bob"}, engine.Turn())
	})

	t.Run("log with an illegal move", func(t *testing.T) {
		moves := []game.Move{create("bob", 4), create("alice", 3)}
		_, err := Resume("test", testGame, moves, WithLogger(zerolog.Nop()))
		require.Error(t, err)
		require.Equal(t, game.CauseNotYourTurn, game.CauseOf(err))
		require.Contains(t, err.Error(), "invalid move 1")
	})

	t.Run("rules follow the engine", func(t *testing.T) {
		rules := game.NewStandardRules()
		rules.Opening = game.SecondPlayerStarts
		_, err := Resume("test", testGame, []game.Move{create("alice", 1)},
			WithLogger(zerolog.Nop()), WithRules(rules))
		require.Error(t, err)
	})
}

func TestLocalEngineConcurrentPlay(t *testing.T) {
	engine := newTestEngine()

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Play(create("alice", 1)); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, accepted, "Only the first submission should win the turn")
	require.Len(t, engine.State().Moves, 1)
}

func TestLocalEngineSlowReader(t *testing.T) {
	engine := newTestEngine(WithUpdateBuffer(1))
	_, getUpdate := engine.Init()

	_, err := engine.Play(create("bob", 4))
	require.NoError(t, err)
	_, err = engine.Play(create("bob", 3))
	require.NoError(t, err, "Play must not block on an unread update")

	u, ok := getUpdate()
	require.True(t, ok)
	require.Equal(t, create("bob", 3), u.Move, "Only the latest update is kept")

	_, ok = getUpdate()
	require.False(t, ok)
}

func TestLegalMoves(t *testing.T) {
	engine := newTestEngine()
	moves := engine.LegalMoves("alice", 2)
	require.Equal(t, []game.Move{create("alice", 2)}, moves)
	require.Nil(t, engine.LegalMoves("alice", 0))
}

func TestLocalEngineCollector(t *testing.T) {
	collector := metrics.NewCollector()
	engine, err := Resume("test", testGame, []game.Move{create("bob", 4)},
		WithLogger(zerolog.Nop()), WithCollector(collector))
	require.NoError(t, err)

	_, err = engine.Play(create("alice", 1))
	require.Error(t, err)
	_, err = engine.Play(create("bob", 2))
	require.NoError(t, err)

	moves := collector.Moves()
	require.Len(t, moves, 2, "Replayed and played moves are both collected")
	require.True(t, moves[0].Rosette)
	require.Equal(t, 2, moves[1].Step)
	require.Equal(t, map[game.Cause]int{game.CauseNotYourTurn: 1}, collector.Rejections())
	require.Same(t, collector, engine.Collector())
}

func TestLocalEnginePlay_UnknownKind(t *testing.T) {
	engine := newTestEngine()

	var err error
	require.NotPanics(t, func() {
		_, err = engine.Play(game.Move{Author: "alice", Kind: &game.CreateToken{Distance: 1}})
	})
	require.Equal(t, game.CauseMalformedMove, game.CauseOf(err))
	require.Empty(t, engine.State().Moves)
}
