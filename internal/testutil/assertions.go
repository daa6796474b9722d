package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSortedPermutation asserts that values are exactly 1..len(values) in
// ascending order.
func AssertSortedPermutation(t *testing.T, values []int) {
	t.Helper()

	for i, v := range values {
		require.Equal(t, i+1, v, "values[%d] in %v", i, values)
	}
}

// AssertFocusInBounds asserts that every focus index lies in [0, n).
func AssertFocusInBounds(t *testing.T, focuses []int, n int) {
	t.Helper()

	for i, f := range focuses {
		assert.True(t, f >= 0 && f < n, "focus[%d] = %d outside [0, %d)", i, f, n)
	}
}
