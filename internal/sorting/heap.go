package sorting

import (
	"iter"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
)

// Heap builds a max-heap in place, then repeatedly moves the root behind the
// shrinking heap and sifts the new root down.
func Heap(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		n := d.Len()
		for i := n/2 - 1; i >= 0; i-- {
			if !heapify(d, n, i, yield) {
				return
			}
		}
		for end := n - 1; end > 0; end-- {
			d.Swap(0, end)
			if !yield(stepper.Paced(stepper.KindSwap, end)) {
				return
			}
			if !heapify(d, end, 0, yield) {
				return
			}
		}
	}
}

// heapify sifts root down within the first size elements. It yields only
// when it swaps, with the child index as focus, and reports false if the
// consumer stopped.
func heapify(d *dataset.Dataset, size, root int, yield func(stepper.Step) bool) bool {
	for {
		largest := root
		left, right := 2*root+1, 2*root+2
		if left < size && d.Less(largest, left) {
			largest = left
		}
		if right < size && d.Less(largest, right) {
			largest = right
		}
		if largest == root {
			return true
		}

		d.Swap(root, largest)
		if !yield(stepper.Paced(stepper.KindSwap, largest)) {
			return false
		}
		root = largest
	}
}
