package dice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoll(t *testing.T) {
	t.Run("throws stay in range", func(t *testing.T) {
		r := NewRoller(7)
		seen := map[int]bool{}
		for i := 0; i < 2000; i++ {
			n := r.Roll()
			require.GreaterOrEqual(t, n, 0)
			require.LessOrEqual(t, n, 4)
			seen[n] = true
		}
		require.Len(t, seen, 5, "Every total should show up eventually")
	})

	t.Run("same seed same throws", func(t *testing.T) {
		a, b := NewRoller(42), NewRoller(42)
		for i := 0; i < 100; i++ {
			require.Equal(t, a.Roll(), b.Roll())
		}
	})
}

func TestProbability(t *testing.T) {
	require.InDelta(t, 1.0/16, Probability(0), 1e-9)
	require.InDelta(t, 4.0/16, Probability(1), 1e-9)
	require.InDelta(t, 6.0/16, Probability(2), 1e-9)
	require.InDelta(t, 4.0/16, Probability(3), 1e-9)
	require.InDelta(t, 1.0/16, Probability(4), 1e-9)
	require.Zero(t, Probability(5))

	total := 0.0
	for n := 0; n <= 4; n++ {
		total += Probability(n)
	}
	require.InDelta(t, 1.0, total, 1e-9)
}
