package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegretMatch_ClampsNegativeRegretToUniform(t *testing.T) {
	got := RegretMatch([]float64{-1.0, 2.0, 3.0})
	require.Len(t, got, 3)
	assert.InDelta(t, 0.0, got[0], 1e-12)
	assert.InDelta(t, 0.4, got[1], 1e-12)
	assert.InDelta(t, 0.6, got[2], 1e-12)

	got = RegretMatch([]float64{-1.0, -2.0})
	assert.InDelta(t, 0.5, got[0], 1e-12)
	assert.InDelta(t, 0.5, got[1], 1e-12)
}

// Testable property 4: regret-matching output is a valid probability
// distribution for any real-valued regret input.
func TestRegretMatch_AlwaysValidDistribution(t *testing.T) {
	cases := [][]float64{
		{0, 0, 0},
		{-5, -5, -5, -5},
		{1e9, -1e9, 0.5},
		{0.0001, 0.0001},
	}
	for _, r := range cases {
		sigma := RegretMatch(r)
		sum := 0.0
		for _, p := range sigma {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

// Testable property 9: an infoset with n=1 must converge to strategy
// [1.0], and stay there regardless of regret (nothing to regret against).
func TestRegretMatch_SingleAction(t *testing.T) {
	sigma := RegretMatch([]float64{0})
	assert.Equal(t, []float64{1.0}, sigma)

	sigma = RegretMatch([]float64{42})
	assert.Equal(t, []float64{1.0}, sigma)
}

// Testable property 3 & 6: Normalize sums to 1 whenever any component is
// positive, else uniform; and is idempotent.
func TestNormalize(t *testing.T) {
	out := Normalize([]float64{1, 1, 2})
	assert.InDelta(t, 0.25, out[0], 1e-12)
	assert.InDelta(t, 0.25, out[1], 1e-12)
	assert.InDelta(t, 0.5, out[2], 1e-12)

	out = Normalize([]float64{0, 0, 0})
	for _, p := range out {
		assert.InDelta(t, 1.0/3.0, p, 1e-12)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := [][]float64{
		{3, 1, 0, 6},
		{0, 0},
		{7},
	}
	for _, v := range inputs {
		once := Normalize(v)
		twice := Normalize(once)
		for i := range once {
			assert.InDelta(t, once[i], twice[i], 1e-12)
		}
	}
}
