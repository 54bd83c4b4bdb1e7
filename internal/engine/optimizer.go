// Package engine is the route-optimization core: an adaptively benchmarked
// Euclidean distance metric, a candidate filter, and a family of
// tour-construction algorithms selected by problem size.
package engine

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ed-rscan/internal/stars"
)

const (
	// ExactMaxCandidates caps the brute-force permutation search. (n-1)!
	// permutations stay tractable up to about here and nowhere past it.
	ExactMaxCandidates = 10
	// AnnealingMaxCandidates bounds the band where a single annealing run is
	// preferred over the heavier genetic machinery.
	AnnealingMaxCandidates = 40
	// overRangePenalty inflates the effective cost of a leg longer than the
	// jump range. The range is a soft constraint for tour building; only the
	// pathfinder treats it as hard adjacency.
	overRangePenalty = 10.0
)

// Algorithm selects a route-construction strategy.
type Algorithm int

const (
	AlgoAuto Algorithm = iota
	AlgoExact
	AlgoAnnealing
	AlgoGenetic
)

func (a Algorithm) String() string {
	switch a {
	case AlgoExact:
		return "exact"
	case AlgoAnnealing:
		return "annealing"
	case AlgoGenetic:
		return "genetic"
	}
	return "auto"
}

// ParseAlgorithm maps a config/flag string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "", "auto":
		return AlgoAuto, nil
	case "exact":
		return AlgoExact, nil
	case "annealing":
		return AlgoAnnealing, nil
	case "genetic":
		return AlgoGenetic, nil
	}
	return AlgoAuto, fmt.Errorf("unknown algorithm %q", s)
}

// Route is an ordered visiting sequence. The start system is excluded; every
// element carries a populated leg distance and the legs sum to TotalDistance.
type Route struct {
	Systems       []*stars.StarSystem
	TotalDistance float64
}

// Covered returns how many candidates the route visits.
func (r Route) Covered() int { return len(r.Systems) }

// PlanParams holds the inputs for route planning. Zero-valued tunables fall
// back to the defaults documented on each field.
type PlanParams struct {
	JumpRange float64   // preferred single-hop ceiling in ly, must be > 0
	Algorithm Algorithm // AlgoAuto picks by candidate count
	Seed      int64     // RNG seed for the stochastic algorithms; 0 = entropy

	PopulationSize int     // genetic, default 100
	Generations    int     // genetic, default 100
	CrossoverRate  float64 // genetic, default 0.4
	MutationRate   float64 // genetic, default 0.05
	InitialTemp    float64 // annealing, default 1000
	CoolingRate    float64 // annealing, default 0.995
	MaxIterations  int     // annealing, default 20000
}

// RouteAlgorithm is the shared capability of the tour-construction
// strategies. Implementations never fail: they always return some route,
// possibly covering fewer candidates than supplied.
type RouteAlgorithm interface {
	Solve(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64) Route
}

// Optimizer dispatches route planning across the algorithm family.
type Optimizer struct {
	Dist *DistanceEngine
}

// NewOptimizer creates an Optimizer around a warmed-up distance engine.
func NewOptimizer(dist *DistanceEngine) *Optimizer {
	return &Optimizer{Dist: dist}
}

// PlanRoute computes a visiting order over the candidates, starting (but not
// ending) at start. Malformed input yields an error or an empty route, never
// a computed garbage answer.
func (o *Optimizer) PlanRoute(start *stars.StarSystem, candidates []*stars.StarSystem, params PlanParams) (Route, error) {
	if err := validateInput(start, candidates, params.JumpRange); err != nil {
		return Route{}, err
	}
	if len(candidates) == 0 {
		return Route{}, nil
	}

	algo := selectAlgorithm(len(candidates), params.Algorithm)
	log.Printf("[Route] Planning %d candidates with %s (jump range %.1f ly)",
		len(candidates), algo, params.JumpRange)

	var solver RouteAlgorithm
	switch algo {
	case AlgoExact:
		solver = &exactTSP{dist: o.Dist}
	case AlgoAnnealing:
		solver = newAnnealing(o.Dist, params)
	default:
		solver = newGenetic(o.Dist, params)
	}
	return solver.Solve(start, candidates, params.JumpRange), nil
}

// FindPath runs A* over the reachability graph formed by the candidates,
// from start toward the candidate nearest the goal point. Hops longer than
// the jump range are not edges. Returns an empty path when the goal set is
// unreachable.
func (o *Optimizer) FindPath(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64, goal stars.Point) ([]*stars.StarSystem, error) {
	if err := validateInput(start, candidates, jumpRange); err != nil {
		return nil, err
	}
	if !goal.Finite() {
		return nil, fmt.Errorf("route: goal point is not finite")
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	p := &pathfinder{dist: o.Dist}
	return p.find(start, candidates, jumpRange, goal), nil
}

// selectAlgorithm picks a strategy from the candidate count, honoring an
// explicit request when it stays tractable.
func selectAlgorithm(n int, requested Algorithm) Algorithm {
	switch requested {
	case AlgoExact:
		if n <= ExactMaxCandidates {
			return AlgoExact
		}
		log.Printf("[Route] %d candidates exceed the exact-search cap of %d, falling back to auto",
			n, ExactMaxCandidates)
	case AlgoAnnealing:
		if n <= AnnealingMaxCandidates {
			return AlgoAnnealing
		}
		log.Printf("[Route] %d candidates exceed the annealing band of %d, falling back to auto",
			n, AnnealingMaxCandidates)
	case AlgoGenetic:
		return AlgoGenetic
	}
	if n <= ExactMaxCandidates {
		return AlgoExact
	}
	return AlgoGenetic
}

func validateInput(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64) error {
	if start == nil || start.Pos == nil {
		return fmt.Errorf("route: start system has no position")
	}
	if !start.Pos.Finite() {
		return fmt.Errorf("route: start system position is not finite")
	}
	if jumpRange <= 0 {
		return fmt.Errorf("route: jump range must be positive, got %v", jumpRange)
	}
	for i, c := range candidates {
		if c == nil {
			return fmt.Errorf("route: candidate %d is nil", i)
		}
		if c.Pos == nil {
			return fmt.Errorf("route: candidate %q has no position", c.Name)
		}
		if !c.Pos.Finite() {
			return fmt.Errorf("route: candidate %q position is not finite", c.Name)
		}
	}
	return nil
}

// rngFromSeed returns a deterministic generator for a non-zero seed, and a
// time-seeded one otherwise. Tests inject a seed; production runs on entropy.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// legCost is the effective cost of a leg for tour building: legs beyond the
// jump range are not forbidden, just heavily discouraged.
func legCost(d, jumpRange float64) float64 {
	if d > jumpRange {
		return d * overRangePenalty
	}
	return d
}

// finalizeRoute writes per-leg distances (raw, not penalized) onto the
// visited systems and totals them.
func finalizeRoute(dist *DistanceEngine, start *stars.StarSystem, order []*stars.StarSystem) Route {
	total := 0.0
	prev := start
	for _, sys := range order {
		d := dist.Distance(*prev.Pos, *sys.Pos)
		sys.SetLegDistance(d)
		total += d
		prev = sys
	}
	return Route{Systems: order, TotalDistance: total}
}
