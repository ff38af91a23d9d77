package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/qubist/hc-ur/game"
	"github.com/qubist/hc-ur/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrStaleState is returned by PlayExpecting when other moves were accepted
	// after the caller last read the state.
	ErrStaleState = errors.New("game state changed since it was read")
)

// Store persists a game every time a move is accepted.
type Store interface {
	SaveState(id string, g game.Game, state game.GameState) error
}

type Option func(e *Engine)

func WithRules(rules *game.Rules) Option {
	return func(e *Engine) {
		if rules != nil {
			e.rules = rules
		}
	}
}

func WithStore(store Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCollector records every accepted and rejected move in c.
func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

// WithUpdateBuffer sets how many updates are kept for a slow reader before the
// oldest is dropped.
func WithUpdateBuffer(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.buffer = size
		}
	}
}

// Engine manages one game: it accepts moves one at a time, always checking
// them against the latest state.
type Engine struct {
	mu        sync.Mutex
	id        string
	game      game.Game
	rules     *game.Rules
	state     game.GameState
	updateCh  chan Update
	buffer    int
	store     Store
	collector metrics.Collector
	logger    zerolog.Logger
}

// NewEngine starts a game with no moves played.
func NewEngine(id string, g game.Game, options ...Option) *Engine {
	e := &Engine{
		id:        id,
		game:      g,
		rules:     game.NewStandardRules(),
		state:     game.Initial(),
		buffer:    16,
		collector: metrics.NewDummyCollector(),
		logger:    log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	e.logger = e.logger.With().Str("game", id).Logger()
	return e
}

// Resume rebuilds a game from its move log, checking every move as if it were
// played again. The store is not written while replaying.
func Resume(id string, g game.Game, moves []game.Move, options ...Option) (*Engine, error) {
	e := NewEngine(id, g, options...)
	for i, m := range moves {
		if err := e.rules.IsValid(m, e.game, e.state); err != nil {
			return nil, fmt.Errorf("invalid move %d (%v) in log: %w", i, m, err)
		}
		e.state = e.state.Evolve(e.game, m)
		e.collector.AddMove(i+1, m, e.game.SeatOf(m.Author))
	}
	e.logger.Debug().Int("moves", len(moves)).Msg("resumed game")
	return e, nil
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Game() game.Game {
	return e.game
}

func (e *Engine) Rules() *game.Rules {
	return e.rules
}

func (e *Engine) Collector() metrics.Collector {
	return e.collector
}

// State returns a copy of the current state.
func (e *Engine) State() game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Copy()
}

func (e *Engine) Turn() game.Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rules.WhoseTurn(e.game, e.state)
}

func (e *Engine) LegalMoves(author string, distance int) []game.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rules.LegalMoves(e.game, e.state, author, distance)
}
