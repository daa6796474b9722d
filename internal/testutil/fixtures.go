package testutil

import "math/rand/v2"

// Sorted returns 1..n in ascending order.
func Sorted(n int) []int {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = i + 1
	}
	return vs
}

// Reversed returns n..1.
func Reversed(n int) []int {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = n - i
	}
	return vs
}

// Shuffled returns a permutation of 1..n that depends only on n and seed.
func Shuffled(n int, seed uint64) []int {
	vs := Sorted(n)
	rng := rand.New(rand.NewPCG(seed, uint64(n)))
	rng.Shuffle(len(vs), func(i, j int) { vs[i], vs[j] = vs[j], vs[i] })
	return vs
}

// Permutations returns every permutation of 1..n in lexicographic order.
// There are n! of them, so keep n small.
func Permutations(n int) [][]int {
	var out [][]int
	cur := Sorted(n)
	for {
		p := make([]int, n)
		copy(p, cur)
		out = append(out, p)
		if !nextPermutation(cur) {
			return out
		}
	}
}

func nextPermutation(vs []int) bool {
	i := len(vs) - 2
	for i >= 0 && vs[i] >= vs[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(vs) - 1
	for vs[j] <= vs[i] {
		j--
	}
	vs[i], vs[j] = vs[j], vs[i]
	for l, r := i+1, len(vs)-1; l < r; l, r = l+1, r-1 {
		vs[l], vs[r] = vs[r], vs[l]
	}
	return true
}
