package sorting

import (
	"iter"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
)

// Insertion shifts larger predecessors right one slot at a time, then drops
// the held value into the gap. Shifts move the focus without pausing; only
// the placement at the end of each outer iteration is paced, giving N-1
// paced steps.
func Insertion(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		n := d.Len()
		for i := 1; i < n; i++ {
			held := d.At(i)
			j := i - 1
			for j >= 0 && d.CompareTo(j, held) > 0 {
				d.Overwrite(j+1, d.At(j))
				if !yield(stepper.Visual(stepper.KindShift, j)) {
					return
				}
				j--
			}
			d.Overwrite(j+1, held)
			if !yield(stepper.Paced(stepper.KindPlace, j+1)) {
				return
			}
		}
	}
}

// Selection scans the unsorted suffix for its minimum and swaps it into
// place, yielding once per position with the minimum's index as focus.
func Selection(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		n := d.Len()
		if n < 2 {
			return
		}
		for i := 0; i < n; i++ {
			iMin := i
			for j := i + 1; j < n; j++ {
				if d.Less(j, iMin) {
					iMin = j
				}
			}
			if iMin != i {
				d.Swap(i, iMin)
			}
			if !yield(stepper.Paced(stepper.KindSwap, iMin)) {
				return
			}
		}
	}
}
