package game

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/qubist/hc-ur/utils"
)

// GameState represents the game at any point: every move played so far and
// where the tokens they produced now sit.
// GameState is immutable - Evolve always returns a new copy.
type GameState struct {
	Moves    []Move     // Every accepted move, oldest first
	P1Tokens []Position // Player 1 tokens on the board
	P1Home   int        // Player 1 tokens that made it home
	P2Tokens []Position // Player 2 tokens on the board
	P2Home   int        // Player 2 tokens that made it home
}

// Initial returns the state before any move is played.
func Initial() GameState {
	return GameState{}
}

// Replay folds moves into the initial state. Moves are assumed valid.
func Replay(game Game, moves []Move) GameState {
	gs := Initial()
	for _, m := range moves {
		gs = gs.Evolve(game, m)
	}
	return gs
}

func (gs GameState) Copy() GameState {
	movesCopy := make([]Move, len(gs.Moves))
	copy(movesCopy, gs.Moves)

	p1Copy := make([]Position, len(gs.P1Tokens))
	copy(p1Copy, gs.P1Tokens)

	p2Copy := make([]Position, len(gs.P2Tokens))
	copy(p2Copy, gs.P2Tokens)

	return GameState{
		Moves:    movesCopy,
		P1Tokens: p1Copy,
		P1Home:   gs.P1Home,
		P2Tokens: p2Copy,
		P2Home:   gs.P2Home,
	}
}

// Tokens returns the positions of seat's tokens on the board.
func (gs GameState) Tokens(seat Seat) []Position {
	switch seat {
	case Seat1:
		return gs.P1Tokens
	case Seat2:
		return gs.P2Tokens
	}
	return nil
}

// Home returns how many of seat's tokens are home.
func (gs GameState) Home(seat Seat) int {
	switch seat {
	case Seat1:
		return gs.P1Home
	case Seat2:
		return gs.P2Home
	}
	return 0
}

// HasToken reports whether seat has a token at p.
func (gs GameState) HasToken(seat Seat, p Position) bool {
	return utils.FindIndex(gs.Tokens(seat), p) >= 0
}

// LastMove returns the most recent move, if any.
func (gs GameState) LastMove() (Move, bool) {
	if len(gs.Moves) == 0 {
		return Move{}, false
	}
	return gs.Moves[len(gs.Moves)-1], true
}

// Evolve computes the state after next is played. next must already have
// passed IsValid; Evolve never re-checks it and never fails.
func (gs GameState) Evolve(game Game, next Move) GameState {
	newGs := gs.Copy()
	newGs.Moves = append(newGs.Moves, next)

	seat := game.SeatOf(next.Author)
	dest, ok := next.Destination(seat)
	if seat == NoSeat || !ok {
		return newGs
	}

	tokens := newGs.Tokens(seat)
	home := newGs.Home(seat)

	switch k := next.Kind.(type) {
	case MoveToken:
		tokens = utils.Without(tokens, k.Origin())
		if IsHoming(k.Origin(), k.Distance, seat) {
			home++
		} else {
			tokens = utils.With(tokens, dest)
		}
	case CreateToken:
		tokens = utils.With(tokens, dest)
	}

	if seat == Seat1 {
		newGs.P1Tokens, newGs.P1Home = tokens, home
	} else {
		newGs.P2Tokens, newGs.P2Home = tokens, home
	}
	return newGs
}

// Hash summarises the board: token positions (in any order), home counts and
// the length of the log.
func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(len(gs.Moves)))

	for _, seat := range []Seat{Seat1, Seat2} {
		tokens := make([]Position, len(gs.Tokens(seat)))
		copy(tokens, gs.Tokens(seat))
		sort.Slice(tokens, func(i, j int) bool {
			if tokens[i].Y != tokens[j].Y {
				return tokens[i].Y < tokens[j].Y
			}
			return tokens[i].X < tokens[j].X
		})

		binary.Write(hasher, binary.LittleEndian, int64(seat))
		for _, t := range tokens {
			binary.Write(hasher, binary.LittleEndian, int64(t.X))
			binary.Write(hasher, binary.LittleEndian, int64(t.Y))
		}
		binary.Write(hasher, binary.LittleEndian, int64(gs.Home(seat)))
	}

	return StateHash(hasher.Sum64())
}

// Waiting returns how many of seat's tokens have not entered the board yet.
func (gs GameState) Waiting(seat Seat, rules *Rules) int {
	return rules.TokensPerPlayer - len(gs.Tokens(seat)) - gs.Home(seat)
}
