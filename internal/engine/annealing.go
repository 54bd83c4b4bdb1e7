package engine

import (
	"math"
	"math/rand"

	"ed-rscan/internal/stars"
)

const (
	defaultInitialTemp   = 1000.0
	defaultCoolingRate   = 0.995
	defaultMaxIterations = 20000
	tempFloor            = 1e-3
)

// annealingTSP is a probabilistic local search over visiting orders: random
// pair swaps, improving moves always accepted, worsening moves accepted with
// probability exp(-Δ/T) under a geometric cooling schedule.
type annealingTSP struct {
	dist *DistanceEngine
	rng  *rand.Rand

	initialTemp   float64
	coolingRate   float64
	maxIterations int
}

func newAnnealing(dist *DistanceEngine, params PlanParams) *annealingTSP {
	a := &annealingTSP{
		dist:          dist,
		rng:           rngFromSeed(params.Seed),
		initialTemp:   params.InitialTemp,
		coolingRate:   params.CoolingRate,
		maxIterations: params.MaxIterations,
	}
	if a.initialTemp <= 0 {
		a.initialTemp = defaultInitialTemp
	}
	if a.coolingRate <= 0 || a.coolingRate >= 1 {
		a.coolingRate = defaultCoolingRate
	}
	if a.maxIterations <= 0 {
		a.maxIterations = defaultMaxIterations
	}
	return a
}

func (a *annealingTSP) Solve(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64) Route {
	n := len(candidates)
	if n == 0 {
		return Route{}
	}

	matrix := costMatrix(a.dist, start, candidates)

	// Nearest-neighbor seed over the full candidate set; unlike the genetic
	// seeding there is no truncation, annealing always tours everything.
	current := greedyIndividual(matrix, n, jumpRange, false)
	currentCost := a.tourCost(matrix, current, jumpRange)
	best := cloneTour(current)
	bestCost := currentCost

	temp := a.initialTemp
	for iter := 0; iter < a.maxIterations && temp > tempFloor; iter++ {
		neighbor := a.swapNeighbor(current)
		cost := a.tourCost(matrix, neighbor, jumpRange)
		delta := cost - currentCost
		if delta < 0 || a.rng.Float64() < math.Exp(-delta/temp) {
			current, currentCost = neighbor, cost
			if cost < bestCost {
				best, bestCost = cloneTour(neighbor), cost
			}
		}
		temp *= a.coolingRate
	}

	order := make([]*stars.StarSystem, 0, n)
	for _, idx := range best[1:] {
		order = append(order, candidates[idx-1])
	}
	return finalizeRoute(a.dist, start, order)
}

// swapNeighbor proposes a copy of the tour with two random interior
// positions exchanged. The start stays fixed at the front.
func (a *annealingTSP) swapNeighbor(tour []int) []int {
	neighbor := cloneTour(tour)
	if len(neighbor) < 3 {
		return neighbor
	}
	i := 1 + a.rng.Intn(len(neighbor)-1)
	j := 1 + a.rng.Intn(len(neighbor)-1)
	for j == i {
		j = 1 + a.rng.Intn(len(neighbor)-1)
	}
	neighbor[i], neighbor[j] = neighbor[j], neighbor[i]
	return neighbor
}

func (a *annealingTSP) tourCost(matrix [][]float64, tour []int, jumpRange float64) float64 {
	cost := 0.0
	for i := 1; i < len(tour); i++ {
		cost += legCost(matrix[tour[i-1]][tour[i]], jumpRange)
	}
	return cost
}
