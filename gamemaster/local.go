package gamemaster

import (
	"fmt"

	"github.com/qubist/hc-ur/game"
)

type Update struct {
	Move  game.Move
	State game.GameState
	Hash  game.StateHash
}

// UpdateGetter returns the next accepted move without blocking, or false when
// there is none yet.
type UpdateGetter func() (Update, bool)

// Init returns the current state and a getter for every move accepted from now on.
func (e *Engine) Init() (game.GameState, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.updateCh == nil {
		e.updateCh = make(chan Update, e.buffer)
	}
	ch := e.updateCh

	return e.state.Copy(), func() (Update, bool) {
		select {
		case u := <-ch:
			return u, true
		default:
			return Update{}, false
		}
	}
}

// Play checks move against the latest state and, if it is legal, makes it part
// of the game. Rejections are returned as *game.Rejection.
func (e *Engine) Play(move game.Move) (game.GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.play(move)
}

// PlayExpecting plays move only if the log still has seen moves, the length
// the caller observed when choosing it.
func (e *Engine) PlayExpecting(seen int, move game.Move) (game.GameState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.state.Moves) != seen {
		e.logger.Debug().Int("seen", seen).Int("moves", len(e.state.Moves)).Msg("stale move")
		return e.state.Copy(), ErrStaleState
	}
	return e.play(move)
}

func (e *Engine) play(move game.Move) (game.GameState, error) {
	if err := e.rules.IsValid(move, e.game, e.state); err != nil {
		e.logger.Warn().
			Str("author", move.Author).
			Str("move", fmt.Sprint(move.Kind)).
			Str("cause", game.CauseOf(err).String()).
			Err(err).
			Msg("move rejected")
		e.collector.AddRejection(game.CauseOf(err))
		return e.state.Copy(), err
	}

	newState := e.state.Evolve(e.game, move)

	if e.store != nil {
		if err := e.store.SaveState(e.id, e.game, newState); err != nil {
			return e.state.Copy(), fmt.Errorf("failed to store move: %w", err)
		}
	}
	e.state = newState
	e.collector.AddMove(len(newState.Moves), move, e.game.SeatOf(move.Author))

	e.logger.Info().
		Str("author", move.Author).
		Str("move", fmt.Sprint(move.Kind)).
		Int("ply", len(newState.Moves)).
		Msg("move accepted")

	e.publish(Update{Move: move, State: newState.Copy(), Hash: newState.Hash()})
	return newState.Copy(), nil
}

// publish never blocks: when the reader falls behind the oldest update is dropped.
func (e *Engine) publish(u Update) {
	if e.updateCh == nil {
		return
	}
	for {
		select {
		case e.updateCh <- u:
			return
		default:
		}
		select {
		case <-e.updateCh:
			e.logger.Debug().Msg("dropped unread update")
		default:
		}
	}
}
