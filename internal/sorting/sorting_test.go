package sorting

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
	"github.com/thruflo/sortviz/internal/testutil"
)

// drain runs sort over vs with no pacing and returns the final values and
// every step yielded.
func drain(sort Func, vs []int) ([]int, []stepper.Step) {
	d := dataset.FromValues(vs)
	var steps []stepper.Step
	for s := range sort(d) {
		steps = append(steps, s)
	}
	return d.Snapshot(), steps
}

func paced(steps []stepper.Step) []stepper.Step {
	var out []stepper.Step
	for _, s := range steps {
		if s.Paced {
			out = append(out, s)
		}
	}
	return out
}

func focuses(steps []stepper.Step) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.Focus
	}
	return out
}

func TestAllAlgorithms_SortEveryPermutation(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		t.Run(alg.Key, func(t *testing.T) {
			t.Parallel()
			for n := 0; n <= 6; n++ {
				for _, perm := range testutil.Permutations(n) {
					got, steps := drain(alg.Sort, perm)
					testutil.AssertSortedPermutation(t, got)
					testutil.AssertFocusInBounds(t, focuses(steps), n)
				}
			}
		})
	}
}

func TestAllAlgorithms_SortLargeShuffled(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		t.Run(alg.Key, func(t *testing.T) {
			t.Parallel()
			for _, n := range []int{7, 31, 64, 200} {
				for seed := uint64(0); seed < 3; seed++ {
					got, steps := drain(alg.Sort, testutil.Shuffled(n, seed))
					testutil.AssertSortedPermutation(t, got)
					testutil.AssertFocusInBounds(t, focuses(steps), n)
				}
			}
		})
	}
}

func TestAllAlgorithms_SortedInputUnchanged(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		t.Run(alg.Key, func(t *testing.T) {
			for _, n := range []int{1, 2, 10, 50} {
				got, _ := drain(alg.Sort, testutil.Sorted(n))
				assert.Equal(t, testutil.Sorted(n), got)
			}
		})
	}
}

func TestAllAlgorithms_TrivialSizesEmitNothing(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		t.Run(alg.Key, func(t *testing.T) {
			got, steps := drain(alg.Sort, nil)
			assert.Empty(t, got)
			assert.Empty(t, steps)

			got, steps = drain(alg.Sort, []int{1})
			assert.Equal(t, []int{1}, got)
			assert.Empty(t, steps)
		})
	}
}

func TestAllAlgorithms_Restartable(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		d := dataset.FromValues(testutil.Shuffled(40, 9))
		seq := alg.Sort(d)
		for range seq {
		}
		require.True(t, d.IsSorted(), alg.Key)

		// A second run over new data shares no state with the first.
		d2 := dataset.FromValues(testutil.Reversed(40))
		for range alg.Sort(d2) {
		}
		assert.True(t, d2.IsSorted(), alg.Key)
	}
}

func TestAllAlgorithms_StopEarly(t *testing.T) {
	t.Parallel()

	for _, alg := range Builtin() {
		t.Run(alg.Key, func(t *testing.T) {
			d := dataset.FromValues(testutil.Reversed(30))
			count := 0
			for range alg.Sort(d) {
				count++
				if count == 5 {
					break
				}
			}
			assert.Equal(t, 5, count)
			assert.False(t, d.IsSorted())
		})
	}
}

func TestBubble_StepCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 5, 17, 40} {
		for _, input := range [][]int{testutil.Sorted(n), testutil.Reversed(n), testutil.Shuffled(n, 1)} {
			_, steps := drain(Bubble, input)
			assert.Len(t, steps, n*(n-1)/2, "n=%d", n)
			for _, s := range steps {
				assert.True(t, s.Paced)
				assert.Equal(t, stepper.KindCompare, s.Kind)
			}
		}
	}
}

func TestBubble_ReversedFive(t *testing.T) {
	t.Parallel()

	got, steps := drain(Bubble, []int{5, 4, 3, 2, 1})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	require.Len(t, steps, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 0, 1, 2, 0, 1, 0}, focuses(steps))
}

func TestSelection_StepCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 5, 17, 40} {
		_, steps := drain(Selection, testutil.Shuffled(n, 3))
		assert.Len(t, steps, n, "n=%d", n)
	}
}

func TestSelection_ReversedFive(t *testing.T) {
	t.Parallel()

	got, steps := drain(Selection, []int{5, 4, 3, 2, 1})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	require.Len(t, steps, 5)
	// Focus is where each pass found its minimum.
	assert.Equal(t, []int{4, 3, 2, 3, 4}, focuses(steps))
}

func TestSelection_SortedFocusFollowsPosition(t *testing.T) {
	t.Parallel()

	_, steps := drain(Selection, testutil.Sorted(5))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, focuses(steps))
}

func TestCocktail_SortedEmitsNothing(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 10, 100} {
		d := dataset.FromValues(testutil.Sorted(n))
		count := 0
		for range Cocktail(d) {
			count++
		}
		assert.Zero(t, count)
		// One forward and one backward pass: (n-1) + (n-2) comparisons.
		assert.Equal(t, int64((n-1)+(n-2)), d.Counts().Compares, "n=%d", n)
	}
}

func TestCocktail_OneStepPerSwap(t *testing.T) {
	t.Parallel()

	for seed := uint64(0); seed < 5; seed++ {
		d := dataset.FromValues(testutil.Shuffled(25, seed))
		count := 0
		for s := range Cocktail(d) {
			assert.Equal(t, stepper.KindSwap, s.Kind)
			count++
		}
		assert.Equal(t, d.Counts().Swaps, int64(count))
	}
}

func TestInsertion_PacedOncePerOuterIteration(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 5, 33} {
		_, steps := drain(Insertion, testutil.Shuffled(n, 2))
		p := paced(steps)
		assert.Len(t, p, n-1)
		for _, s := range p {
			assert.Equal(t, stepper.KindPlace, s.Kind)
		}
	}
}

func TestInsertion_ShiftsAreVisualOnly(t *testing.T) {
	t.Parallel()

	_, steps := drain(Insertion, []int{3, 2, 1})
	// i=1: shift 0, place 0. i=2: shift 1, shift 0, place 0.
	assert.Equal(t, []stepper.Step{
		stepper.Visual(stepper.KindShift, 0),
		stepper.Paced(stepper.KindPlace, 0),
		stepper.Visual(stepper.KindShift, 1),
		stepper.Visual(stepper.KindShift, 0),
		stepper.Paced(stepper.KindPlace, 0),
	}, steps)
}

func TestHeap_StepsAreSwaps(t *testing.T) {
	t.Parallel()

	d := dataset.FromValues(testutil.Shuffled(64, 4))
	count := 0
	for s := range Heap(d) {
		assert.True(t, s.Paced)
		assert.Equal(t, stepper.KindSwap, s.Kind)
		count++
	}
	assert.True(t, d.IsSorted())
	assert.Equal(t, d.Counts().Swaps, int64(count))
}

func TestHeap_SortedInputStillSifts(t *testing.T) {
	t.Parallel()

	// Ascending input is a min-heap, so building the max-heap has work to do.
	_, steps := drain(Heap, testutil.Sorted(4))
	assert.NotEmpty(t, steps)
	// The extraction phase alone emits n-1 steps.
	assert.GreaterOrEqual(t, len(steps), 3)
}

func TestMerge_StepBound(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 7, 16, 100, 257} {
		for seed := uint64(0); seed < 3; seed++ {
			_, steps := drain(Merge, testutil.Shuffled(n, seed))
			bound := float64(n) * math.Log2(float64(n))
			assert.LessOrEqual(t, float64(len(steps)), bound, "n=%d", n)
			for _, s := range steps {
				assert.Equal(t, stepper.KindWrite, s.Kind)
			}
		}
	}
}

func TestMerge_TailCopyIsUnpaced(t *testing.T) {
	t.Parallel()

	// [1,2] + [3]: both left values are taken before the right half is
	// touched, so the single right value is copied without a step.
	_, steps := drain(Merge, []int{1, 2, 3})
	// merge([0,1]): one interleaved write at 0. merge([0,1],[2]): writes at 0, 1.
	assert.Equal(t, []int{0, 0, 1}, focuses(steps))
}

func TestMerge_TiesTakeRight(t *testing.T) {
	t.Parallel()

	d := dataset.FromValues([]int{2, 2})
	var steps []stepper.Step
	for s := range Merge(d) {
		steps = append(steps, s)
	}
	assert.Equal(t, []int{2, 2}, d.Snapshot())
	require.Len(t, steps, 1)
	assert.Equal(t, 0, steps[0].Focus)
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := Default()

	tests := []struct {
		name string
		want string
	}{
		{"bubble", "bubble"},
		{"Bubble Sort", "bubble"},
		{"  MERGE ", "merge"},
		{"cocktail shaker sort", "cocktail"},
		{"heap", "heap"},
	}
	for _, tt := range tests {
		alg, err := reg.Lookup(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, alg.Key)
	}

	_, err := reg.Lookup("bogo")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"bubble", "cocktail", "insertion", "selection", "heap", "merge"},
		Default().Names())
	assert.Len(t, Default().All(), 6)
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(Algorithm{Key: "b", Sort: Bubble}))

	alg, err := reg.Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, "b", alg.Title)

	assert.Error(t, reg.Register(Algorithm{Key: "B", Sort: Bubble}))
	assert.Error(t, reg.Register(Algorithm{Key: "", Sort: Bubble}))
	assert.Error(t, reg.Register(Algorithm{Key: "x"}))
}

func TestRegistry_Next(t *testing.T) {
	t.Parallel()

	reg := Default()
	assert.Equal(t, "cocktail", reg.Next("bubble", 1))
	assert.Equal(t, "bubble", reg.Next("merge", 1))
	assert.Equal(t, "merge", reg.Next("bubble", -1))
	assert.Equal(t, "bubble", reg.Next("unknown", 1))
	assert.Equal(t, "", NewRegistry().Next("bubble", 1))
}
