package game

import (
	"fmt"
	"strings"
)

// Render draws the board as text, player 1's lane on top. Rosettes are '*',
// empty cells '.', tokens '1' or '2', and 'X' marks a shared cell both players
// stand on.
func (gs GameState) Render(game Game, rules *Rules) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s home:%d waiting:%d\n", Seat1, game.Player1, gs.P1Home, gs.Waiting(Seat1, rules))
	for y := LaneP1; y <= LaneP2; y++ {
		for x := 0; x <= 7; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(gs.cell(Position{x, y}))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s %s home:%d waiting:%d\n", Seat2, game.Player2, gs.P2Home, gs.Waiting(Seat2, rules))

	return b.String()
}

func (gs GameState) cell(p Position) byte {
	if !OnBoard(p) {
		return ' '
	}
	p1, p2 := gs.HasToken(Seat1, p), gs.HasToken(Seat2, p)
	switch {
	case p1 && p2:
		return 'X'
	case p1:
		return '1'
	case p2:
		return '2'
	case IsRosette(p):
		return '*'
	default:
		return '.'
	}
}
