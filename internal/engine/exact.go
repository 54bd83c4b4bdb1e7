package engine

import "ed-rscan/internal/stars"

// exactTSP finds the minimum-cost closed tour by exhaustive permutation
// search. O(n!) time and O(n²) memory, so the dispatcher only sends it
// instances of at most ExactMaxCandidates.
type exactTSP struct {
	dist *DistanceEngine
}

func (a *exactTSP) Solve(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64) Route {
	n := len(candidates)
	if n == 0 {
		return Route{}
	}

	// Pairwise cost matrix; index 0 is the start system.
	matrix := costMatrix(a.dist, start, candidates)

	// Enumerate permutations of 1..n in lexicographic order; first seen wins
	// ties, so the result is deterministic.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i + 1
	}
	best := make([]int, n)
	copy(best, perm)
	bestCost := tourWeight(matrix, perm)

	for nextPermutation(perm) {
		if cost := tourWeight(matrix, perm); cost < bestCost {
			bestCost = cost
			copy(best, perm)
		}
	}

	order := make([]*stars.StarSystem, n)
	for i, idx := range best {
		order[i] = candidates[idx-1]
	}
	// The closing return-to-start leg counts toward tour selection but is
	// not written back onto any system.
	return finalizeRoute(a.dist, start, order)
}

// tourWeight walks start -> perm... -> start on the cost matrix.
func tourWeight(matrix [][]float64, perm []int) float64 {
	weight := 0.0
	k := 0
	for _, j := range perm {
		weight += matrix[k][j]
		k = j
	}
	return weight + matrix[k][0]
}

// nextPermutation advances p to its lexicographic successor in place,
// returning false once p is the final (descending) permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
