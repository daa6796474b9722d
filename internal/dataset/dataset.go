// Package dataset owns the array being sorted. It exposes the read and mutate
// primitives the sorting algorithms are built from, keeps operation counters,
// and treats any out-of-range index as a programming defect.
//
// A Dataset has one writer (the running algorithm) and any number of readers
// (renderer, tone tracker). All access goes through an RWMutex so readers
// polling on their own ticker never see a torn write.
package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrInvalidSize is returned by Reset when asked for fewer than one element.
var ErrInvalidSize = errors.New("invalid dataset size")

// IndexError is the panic value for an index outside [0, Len).
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dataset: %s index %d out of bounds [0, %d)", e.Op, e.Index, e.Len)
}

// Counts tallies primitive operations since the last Reset.
type Counts struct {
	Compares int64
	Swaps    int64
	Writes   int64
}

// Dataset is an in-memory array of distinct positive integers.
type Dataset struct {
	mu     sync.RWMutex
	values []int
	counts Counts
}

// New returns an empty dataset. Call Reset before sorting it.
func New() *Dataset {
	return &Dataset{}
}

// FromValues returns a dataset over a copy of vs.
func FromValues(vs []int) *Dataset {
	values := make([]int, len(vs))
	copy(values, vs)
	return &Dataset{values: values}
}

// Reset replaces the contents with a uniformly random permutation of 1..n.
// A nil rng uses the global source.
func (d *Dataset) Reset(n int, rng *rand.Rand) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}

	values := make([]int, n)
	for i := range values {
		values[i] = i + 1
	}
	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}

	d.mu.Lock()
	d.values = values
	d.counts = Counts{}
	d.mu.Unlock()
	return nil
}

// Len returns the number of elements.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.values)
}

// At returns values[i].
func (d *Dataset) At(i int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	d.check("at", i)
	return d.values[i]
}

// Compare returns -1, 0 or +1 as values[i] is less than, equal to or
// greater than values[j].
func (d *Dataset) Compare(i, j int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.check("compare", i)
	d.check("compare", j)
	d.counts.Compares++
	return cmpInt(d.values[i], d.values[j])
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareTo orders values[i] against a value held outside the array.
func (d *Dataset) CompareTo(i, v int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.check("compare", i)
	d.counts.Compares++
	return cmpInt(d.values[i], v)
}

// CountCompare records a comparison made between two values held outside
// the array, such as merge scratch buffers, and returns their ordering.
func (d *Dataset) CountCompare(a, b int) int {
	d.mu.Lock()
	d.counts.Compares++
	d.mu.Unlock()
	return cmpInt(a, b)
}

// Less reports whether values[i] < values[j].
func (d *Dataset) Less(i, j int) bool {
	return d.Compare(i, j) < 0
}

// Swap exchanges values[i] and values[j].
func (d *Dataset) Swap(i, j int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.check("swap", i)
	d.check("swap", j)
	d.counts.Swaps++
	d.values[i], d.values[j] = d.values[j], d.values[i]
}

// Overwrite sets values[i] = v. The permutation invariant may be broken
// until the algorithm that calls this completes.
func (d *Dataset) Overwrite(i, v int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.check("overwrite", i)
	d.counts.Writes++
	d.values[i] = v
}

// Slice returns a copy of values[lo:hi].
func (d *Dataset) Slice(lo, hi int) []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := len(d.values)
	if lo < 0 || lo > n {
		panic(&IndexError{Op: "slice", Index: lo, Len: n})
	}
	if hi < lo || hi > n {
		panic(&IndexError{Op: "slice", Index: hi, Len: n})
	}
	out := make([]int, hi-lo)
	copy(out, d.values[lo:hi])
	return out
}

// Snapshot returns a copy of all values.
func (d *Dataset) Snapshot() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]int, len(d.values))
	copy(out, d.values)
	return out
}

// Counts returns the operation counters.
func (d *Dataset) Counts() Counts {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.counts
}

// IsSorted reports whether the values are in ascending order.
func (d *Dataset) IsSorted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := 1; i < len(d.values); i++ {
		if d.values[i-1] > d.values[i] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether the values are exactly 1..Len in some order.
func (d *Dataset) IsPermutation() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return IsPermutation(d.values)
}

// IsPermutation reports whether vs holds each of 1..len(vs) exactly once.
func IsPermutation(vs []int) bool {
	seen := make([]bool, len(vs)+1)
	for _, v := range vs {
		if v < 1 || v > len(vs) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// check must be called with mu held.
func (d *Dataset) check(op string, i int) {
	if i < 0 || i >= len(d.values) {
		panic(&IndexError{Op: op, Index: i, Len: len(d.values)})
	}
}
