package sorting

import (
	"iter"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
)

// Merge is top-down merge sort over inclusive ranges. Only the interleaved
// part of each merge is paced; copying the leftover tail of a half is
// instant.
func Merge(d *dataset.Dataset) iter.Seq[stepper.Step] {
	return func(yield func(stepper.Step) bool) {
		mergeSort(d, 0, d.Len()-1, yield)
	}
}

func mergeSort(d *dataset.Dataset, left, right int, yield func(stepper.Step) bool) bool {
	if left >= right {
		return true
	}
	mid := (left + right) / 2

	if !mergeSort(d, left, mid, yield) {
		return false
	}
	if !mergeSort(d, mid+1, right, yield) {
		return false
	}
	return merge(d, left, mid, right, yield)
}

// merge combines the sorted runs [left, mid] and [mid+1, right]. The left
// front is taken only when strictly smaller, so ties come from the right.
func merge(d *dataset.Dataset, left, mid, right int, yield func(stepper.Step) bool) bool {
	lhalf := d.Slice(left, mid+1)
	rhalf := d.Slice(mid+1, right+1)

	i, j, k := 0, 0, left
	for i < len(lhalf) && j < len(rhalf) {
		if d.CountCompare(lhalf[i], rhalf[j]) < 0 {
			d.Overwrite(k, lhalf[i])
			i++
		} else {
			d.Overwrite(k, rhalf[j])
			j++
		}
		if !yield(stepper.Paced(stepper.KindWrite, k)) {
			return false
		}
		k++
	}

	for ; i < len(lhalf); i, k = i+1, k+1 {
		d.Overwrite(k, lhalf[i])
	}
	for ; j < len(rhalf); j, k = j+1, k+1 {
		d.Overwrite(k, rhalf[j])
	}
	return true
}
