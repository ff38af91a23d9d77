// Package dice throws the binary pyramid dice the race is played with. Each
// die shows a marked tip half of the time; a throw is the number of marked tips.
package dice

import (
	"github.com/qubist/hc-ur/meta"

	"golang.org/x/exp/rand"
)

type Roller struct {
	rng  *rand.Rand
	dice int
}

// NewRoller returns a roller throwing meta.DICE dice from a seeded source, so
// a seed always reproduces the same throws.
func NewRoller(seed uint64) *Roller {
	return &Roller{
		rng:  rand.New(rand.NewSource(seed)),
		dice: meta.DICE,
	}
}

// Roll throws every die and returns the total, between 0 and the number of dice.
func (r *Roller) Roll() int {
	total := 0
	for i := 0; i < r.dice; i++ {
		total += r.rng.Intn(2)
	}
	return total
}

// Probability is the chance of throwing exactly n with meta.DICE dice.
func Probability(n int) float64 {
	if n < 0 || n > meta.DICE {
		return 0
	}
	ways := 1
	for i := 0; i < n; i++ {
		ways = ways * (meta.DICE - i) / (i + 1)
	}
	return float64(ways) / float64(int(1)<<meta.DICE)
}
