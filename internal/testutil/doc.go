// Package testutil provides shared test utilities for sortviz.
//
// # Fixtures
//
// The fixtures.go file provides input arrays for sorting tests:
//
//   - Sorted(n), Reversed(n) - 1..n ascending or descending
//   - Shuffled(n, seed) - a reproducible random permutation of 1..n
//   - Permutations(n) - every permutation of 1..n (small n only)
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertSortedPermutation(t, values) - ascending and exactly 1..len
//   - AssertFocusInBounds(t, focuses, n) - every focus index lies in [0, n)
//
// # Timeouts
//
// The timeout.go file provides contexts bounded by the test deadline:
//
//   - ContextWithTestDeadline(t, fallback)
//   - RunContext(t) - a context sized for a single visualized run
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    d := dataset.FromValues(testutil.Reversed(8))
//	    // ... sort d ...
//	    testutil.AssertSortedPermutation(t, d.Snapshot())
//	}
package testutil
