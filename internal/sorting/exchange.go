package sorting

import (
	"iter"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
)

// Bubble is the classic adjacent-swap sort. It makes N-1 passes with no early
// exit and yields after every comparison, so it always emits N*(N-1)/2 steps.
// The focus is the left index of the compared pair.
func Bubble(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		n := d.Len()
		for i := 0; i < n-1; i++ {
			for j := 0; j < n-i-1; j++ {
				if d.Compare(j, j+1) > 0 {
					d.Swap(j, j+1)
				}
				if !yield(stepper.Paced(stepper.KindCompare, j)) {
					return
				}
			}
		}
	}
}

// Cocktail is bubble sort alternating a forward and a backward pass. It
// yields only when it swaps, with the lower index of the pair as focus, and
// stops once a full forward+backward pass swaps nothing.
func Cocktail(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		start, end := 0, d.Len()-1
		for start < end {
			swapped := false

			for j := start; j < end; j++ {
				if d.Compare(j, j+1) > 0 {
					d.Swap(j, j+1)
					swapped = true
					if !yield(stepper.Paced(stepper.KindSwap, j)) {
						return
					}
				}
			}
			end--

			for j := end; j > start; j-- {
				if d.Compare(j-1, j) > 0 {
					d.Swap(j-1, j)
					swapped = true
					if !yield(stepper.Paced(stepper.KindSwap, j-1)) {
						return
					}
				}
			}
			start++

			if !swapped {
				return
			}
		}
	}
}
