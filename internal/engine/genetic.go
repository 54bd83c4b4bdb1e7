package engine

import (
	"math"
	"math/rand"

	"ed-rscan/internal/stars"
)

const (
	defaultPopulationSize = 100
	defaultGenerations    = 100
	defaultCrossoverRate  = 0.4
	defaultMutationRate   = 0.05
)

// geneticTSP is a nearest-neighbor-seeded genetic search over visiting
// orders. Individuals are index permutations headed by the start system; a
// truncated individual (greedy seeding stopped at the jump range) is legal
// and simply covers fewer candidates.
type geneticTSP struct {
	dist *DistanceEngine
	rng  *rand.Rand

	populationSize int
	generations    int
	crossoverRate  float64
	mutationRate   float64
}

func newGenetic(dist *DistanceEngine, params PlanParams) *geneticTSP {
	g := &geneticTSP{
		dist:           dist,
		rng:            rngFromSeed(params.Seed),
		populationSize: params.PopulationSize,
		generations:    params.Generations,
		crossoverRate:  params.CrossoverRate,
		mutationRate:   params.MutationRate,
	}
	if g.populationSize <= 0 {
		g.populationSize = defaultPopulationSize
	}
	if g.generations <= 0 {
		g.generations = defaultGenerations
	}
	if g.crossoverRate <= 0 {
		g.crossoverRate = defaultCrossoverRate
	}
	if g.mutationRate <= 0 {
		g.mutationRate = defaultMutationRate
	}
	return g
}

func (g *geneticTSP) Solve(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64) Route {
	n := len(candidates)
	if n == 0 {
		return Route{}
	}

	matrix := costMatrix(g.dist, start, candidates)
	best := g.evolve(matrix, n, jumpRange)

	// Drop the leading start index before returning.
	order := make([]*stars.StarSystem, 0, len(best)-1)
	for _, idx := range best[1:] {
		order = append(order, candidates[idx-1])
	}
	return finalizeRoute(g.dist, start, order)
}

func (g *geneticTSP) evolve(matrix [][]float64, n int, jumpRange float64) []int {
	population := make([][]int, g.populationSize)
	for i := range population {
		population[i] = greedyIndividual(matrix, n, jumpRange, true)
	}

	var best []int
	for gen := 0; gen < g.generations; gen++ {
		fitnesses := make([]float64, len(population))
		bestIdx := 0
		for i, ind := range population {
			fitnesses[i] = g.fitness(matrix, ind, jumpRange)
			if fitnesses[i] > fitnesses[bestIdx] {
				bestIdx = i
			}
		}
		best = population[bestIdx]
		// Nothing left to gain once the best individual covers everything
		// the greedy seed had to truncate.
		if len(best) == n+1 {
			break
		}

		next := make([][]int, 0, g.populationSize)
		next = append(next, cloneTour(best)) // elitism
		for len(next) < g.populationSize {
			p1 := population[g.selectParent(fitnesses)]
			p2 := population[g.selectParent(fitnesses)]
			child := g.crossover(p1, p2)
			g.mutate(child)
			next = append(next, child)
		}
		population = next
	}
	return best
}

// fitness is the reciprocal tour cost; shorter is strictly better. A
// zero-length tour is infinitely fit, which both guards the division and
// lets degenerate single-point tours dominate.
func (g *geneticTSP) fitness(matrix [][]float64, ind []int, jumpRange float64) float64 {
	cost := 0.0
	for i := 1; i < len(ind); i++ {
		cost += legCost(matrix[ind[i-1]][ind[i]], jumpRange)
	}
	if cost == 0 {
		return math.Inf(1)
	}
	return 1 / cost
}

// selectParent draws an individual with probability proportional to fitness
// (with replacement). Infinitely fit individuals preempt the weighted draw.
func (g *geneticTSP) selectParent(fitnesses []float64) int {
	total := 0.0
	for i, f := range fitnesses {
		if math.IsInf(f, 1) {
			return i
		}
		total += f
	}
	r := g.rng.Float64() * total
	for i, f := range fitnesses {
		r -= f
		if r <= 0 {
			return i
		}
	}
	return len(fitnesses) - 1
}

// crossover keeps a contiguous prefix of parent a and appends, in parent b's
// order, every index not already present. With probability 1-crossoverRate
// the child is a verbatim copy of parent a.
func (g *geneticTSP) crossover(a, b []int) []int {
	if g.rng.Float64() > g.crossoverRate || len(a) < 3 {
		return cloneTour(a)
	}
	cut := 1 + g.rng.Intn(len(a)-2) // interior cut point
	child := make([]int, 0, len(a))
	child = append(child, a[:cut]...)
	seen := make(map[int]bool, cut)
	for _, idx := range child {
		seen[idx] = true
	}
	for _, idx := range b {
		if !seen[idx] {
			child = append(child, idx)
		}
	}
	return child
}

// mutate swaps two random interior positions, never the start.
func (g *geneticTSP) mutate(ind []int) {
	if g.rng.Float64() > g.mutationRate || len(ind) < 3 {
		return
	}
	i := 1 + g.rng.Intn(len(ind)-1)
	j := 1 + g.rng.Intn(len(ind)-1)
	for j == i {
		j = 1 + g.rng.Intn(len(ind)-1)
	}
	ind[i], ind[j] = ind[j], ind[i]
}

func cloneTour(t []int) []int {
	c := make([]int, len(t))
	copy(c, t)
	return c
}

// greedyIndividual builds a tour by repeatedly visiting the nearest unused
// candidate. When truncate is set, construction stops as soon as the nearest
// remaining candidate would exceed the jump range.
func greedyIndividual(matrix [][]float64, n int, jumpRange float64, truncate bool) []int {
	ind := make([]int, 0, n+1)
	ind = append(ind, 0)
	used := make([]bool, n+1)
	used[0] = true
	cur := 0
	for len(ind) < n+1 {
		nearest, nearestD := -1, math.Inf(1)
		for j := 1; j <= n; j++ {
			if !used[j] && matrix[cur][j] < nearestD {
				nearest, nearestD = j, matrix[cur][j]
			}
		}
		if nearest < 0 || (truncate && nearestD > jumpRange) {
			break
		}
		ind = append(ind, nearest)
		used[nearest] = true
		cur = nearest
	}
	return ind
}

// costMatrix precomputes pairwise distances with the start at index 0.
func costMatrix(dist *DistanceEngine, start *stars.StarSystem, candidates []*stars.StarSystem) [][]float64 {
	all := make([]*stars.StarSystem, 0, len(candidates)+1)
	all = append(all, start)
	all = append(all, candidates...)
	matrix := make([][]float64, len(all))
	for i := range matrix {
		matrix[i] = make([]float64, len(all))
		for j := range matrix[i] {
			matrix[i][j] = dist.Distance(*all[i].Pos, *all[j].Pos)
		}
	}
	return matrix
}
