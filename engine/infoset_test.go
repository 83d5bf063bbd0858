package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_ZeroSizeRejected(t *testing.T) {
	_, err := NewStore([]int{2, 0, 3})
	require.Error(t, err)
	var cv *ContractViolation
	require.ErrorAs(t, err, &cv)
}

// Testable property 1 & 2: lengths match size(), and S is always
// non-negative.
func TestStore_Invariants(t *testing.T) {
	size := []int{1, 2, 3, 4}
	store, err := NewStore(size)
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap, len(size))
	for k, is := range snap {
		assert.Len(t, is.R, size[k])
		assert.Len(t, is.S, size[k])
		for _, s := range is.S {
			assert.GreaterOrEqual(t, s, 0.0)
		}
	}
}

func TestStore_IndexOutOfRangePanics(t *testing.T) {
	store, err := NewStore([]int{2})
	require.NoError(t, err)

	assert.Panics(t, func() {
		store.at(5)
	})
}

func TestStore_SizeMismatchPanics(t *testing.T) {
	store, err := NewStore([]int{2})
	require.NoError(t, err)

	assert.Panics(t, func() {
		store.withRegretMatch(0, 3, func(sigma []float64, r []float64) {})
	})
}
