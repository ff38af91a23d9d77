package metrics

import (
	"sync"
	"time"

	"github.com/qubist/hc-ur/game"
)

// MoveMetric describes one accepted move.
type MoveMetric struct {
	Step     int // 1-based position in the log
	Author   string
	Seat     game.Seat
	Kind     string // "create" or "move"
	Distance int
	Landing  game.Position
	Homed    bool
	Rosette  bool
}

type GameMetric struct {
	ID         string
	Player1    string
	Player2    string
	StartTime  time.Time
	EndTime    time.Time
	TotalMoves int
	P1Moves    int
	P2Moves    int
	P1Home     int
	P2Home     int
	Rosettes   int
}

type Collector interface {
	AddMove(step int, move game.Move, seat game.Seat)
	AddRejection(cause game.Cause)
	Moves() []MoveMetric
	Rejections() map[game.Cause]int
}

type collector struct {
	mu         sync.Mutex
	moves      []MoveMetric
	rejections map[game.Cause]int
}

func NewCollector() Collector {
	return &collector{rejections: make(map[game.Cause]int)}
}

func (c *collector) AddMove(step int, move game.Move, seat game.Seat) {
	m := NewMoveMetric(step, move, seat)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moves = append(c.moves, m)
}

func (c *collector) AddRejection(cause game.Cause) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejections[cause]++
}

func (c *collector) Moves() []MoveMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MoveMetric, len(c.moves))
	copy(out, c.moves)
	return out
}

func (c *collector) Rejections() map[game.Cause]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[game.Cause]int, len(c.rejections))
	for cause, n := range c.rejections {
		out[cause] = n
	}
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) AddMove(step int, move game.Move, seat game.Seat) {}
func (d *dummyCollector) AddRejection(cause game.Cause)                    {}
func (d *dummyCollector) Moves() []MoveMetric                              { return nil }
func (d *dummyCollector) Rejections() map[game.Cause]int                   { return nil }

// NewMoveMetric describes move as played from seat. Moves by strangers or
// with an unknown kind keep only their step and author.
func NewMoveMetric(step int, move game.Move, seat game.Seat) MoveMetric {
	m := MoveMetric{Step: step, Author: move.Author, Seat: seat}
	landing, ok := move.Destination(seat)
	if seat == game.NoSeat || !ok {
		return m
	}

	switch move.Kind.(type) {
	case game.CreateToken:
		m.Kind = "create"
	case game.MoveToken:
		m.Kind = "move"
	}
	m.Distance = move.Kind.Steps()
	m.Landing = landing
	m.Homed = m.Landing == game.HomeCell(seat)
	m.Rosette = !m.Homed && game.IsRosette(m.Landing)
	return m
}

// FromLog describes every move of a stored log.
func FromLog(g game.Game, moves []game.Move) []MoveMetric {
	out := make([]MoveMetric, 0, len(moves))
	for i, m := range moves {
		out = append(out, NewMoveMetric(i+1, m, g.SeatOf(m.Author)))
	}
	return out
}

// Summarize totals the moves of one game.
func Summarize(id string, g game.Game, moves []MoveMetric) GameMetric {
	gm := GameMetric{ID: id, Player1: g.Player1, Player2: g.Player2, TotalMoves: len(moves)}
	for _, m := range moves {
		switch m.Seat {
		case game.Seat1:
			gm.P1Moves++
			if m.Homed {
				gm.P1Home++
			}
		case game.Seat2:
			gm.P2Moves++
			if m.Homed {
				gm.P2Home++
			}
		}
		if m.Rosette {
			gm.Rosettes++
		}
	}
	return gm
}
