package dataset

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, -100} {
		d := FromValues([]int{2, 1})
		err := d.Reset(n, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSize))
		// Prior contents are untouched.
		assert.Equal(t, []int{2, 1}, d.Snapshot())
	}
}

func TestReset_ProducesPermutation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 3, 10, 257} {
		d := New()
		require.NoError(t, d.Reset(n, rng))
		assert.Equal(t, n, d.Len())
		assert.True(t, d.IsPermutation(), "n=%d values=%v", n, d.Snapshot())
	}
}

func TestReset_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	require.NoError(t, a.Reset(50, rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, b.Reset(50, rand.New(rand.NewPCG(7, 7))))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestReset_ReplacesAndClearsCounts(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{3, 1, 2})
	d.Swap(0, 1)
	d.Compare(0, 1)
	require.NotZero(t, d.Counts().Swaps)

	require.NoError(t, d.Reset(5, nil))
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, Counts{}, d.Counts())
}

func TestReset_Uniformity(t *testing.T) {
	t.Parallel()

	// Each of the 6 permutations of 1..3 should appear roughly 1/6 of the time.
	rng := rand.New(rand.NewPCG(42, 99))
	counts := map[[3]int]int{}
	const trials = 60000
	d := New()
	for range trials {
		require.NoError(t, d.Reset(3, rng))
		s := d.Snapshot()
		counts[[3]int{s[0], s[1], s[2]}]++
	}

	require.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, trials/6, c, trials/60, "permutation %v", perm)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{2, 5, 2})
	assert.Equal(t, -1, d.Compare(0, 1))
	assert.Equal(t, 1, d.Compare(1, 2))
	assert.Equal(t, 0, d.Compare(0, 2))
	assert.True(t, d.Less(0, 1))
	assert.False(t, d.Less(1, 0))
	assert.Equal(t, int64(5), d.Counts().Compares)

	assert.Equal(t, 1, d.CompareTo(1, 3))
	assert.Equal(t, 0, d.CompareTo(0, 2))
	assert.Equal(t, -1, d.CountCompare(1, 4))
	assert.Equal(t, int64(8), d.Counts().Compares)
}

func TestSwapAndOverwrite(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{1, 2, 3})
	d.Swap(0, 2)
	assert.Equal(t, []int{3, 2, 1}, d.Snapshot())

	d.Overwrite(1, 3)
	assert.Equal(t, []int{3, 3, 1}, d.Snapshot())
	assert.False(t, d.IsPermutation())

	c := d.Counts()
	assert.Equal(t, int64(1), c.Swaps)
	assert.Equal(t, int64(1), c.Writes)
}

func TestOutOfBoundsPanics(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{1, 2, 3})

	tests := []struct {
		name string
		fn   func()
		op   string
	}{
		{"compare high", func() { d.Compare(0, 3) }, "compare"},
		{"compare negative", func() { d.Compare(-1, 0) }, "compare"},
		{"swap", func() { d.Swap(3, 0) }, "swap"},
		{"overwrite", func() { d.Overwrite(5, 1) }, "overwrite"},
		{"at", func() { d.At(-2) }, "at"},
		{"slice", func() { d.Slice(1, 4) }, "slice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				ie, ok := r.(*IndexError)
				require.True(t, ok, "panic value %T", r)
				assert.Equal(t, tt.op, ie.Op)
				assert.Contains(t, ie.Error(), "out of bounds")
			}()
			tt.fn()
		})
	}
}

func TestSlicePanicReportsBadBound(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{1, 2, 3})

	tests := []struct {
		name   string
		lo, hi int
		want   int
	}{
		{"negative lo", -1, 2, -1},
		{"lo past end", 4, 4, 4},
		{"hi past end", 1, 4, 4},
		{"hi before lo", 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				ie, ok := recover().(*IndexError)
				require.True(t, ok, "expected *IndexError panic")
				assert.Equal(t, tt.want, ie.Index)
				assert.Equal(t, 3, ie.Len)
			}()
			d.Slice(tt.lo, tt.hi)
		})
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	t.Parallel()

	d := FromValues([]int{1, 2})
	s := d.Snapshot()
	s[0] = 99
	assert.Equal(t, 1, d.At(0))

	part := d.Slice(0, 1)
	part[0] = 42
	assert.Equal(t, 1, d.At(0))
}

func TestIsSorted(t *testing.T) {
	t.Parallel()

	assert.True(t, FromValues(nil).IsSorted())
	assert.True(t, FromValues([]int{1}).IsSorted())
	assert.True(t, FromValues([]int{1, 2, 3}).IsSorted())
	assert.False(t, FromValues([]int{2, 1, 3}).IsSorted())
}

func TestIsPermutation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		vs   []int
		want bool
	}{
		{nil, true},
		{[]int{1}, true},
		{[]int{3, 1, 2}, true},
		{[]int{0, 1}, false},
		{[]int{1, 1}, false},
		{[]int{1, 3}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPermutation(tt.vs), "%v", tt.vs)
	}
}
