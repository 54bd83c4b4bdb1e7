// Package scan orchestrates a route search: catalog queries, candidate
// filtering and route planning, run one job at a time on a dedicated worker.
package scan

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"ed-rscan/internal/edsm"
	"ed-rscan/internal/engine"
	"ed-rscan/internal/stars"
)

// jumpRangeMargin is the fuel safety margin subtracted from the configured
// jump range before planning, carried over from the original tool.
const jumpRangeMargin = 4.0

// bodiesFetchLimit bounds concurrent per-system bodies lookups.
const bodiesFetchLimit = 4

// Params holds the inputs of one search job.
type Params struct {
	StartSystem string
	Radius      int     // sphere radius in ly, clamped to the catalog's 5..100
	JumpRange   float64 // ship jump range in ly
	DeepScan    bool    // refresh per-system body counts before filtering
	Algorithm   engine.Algorithm
	Seed        int64

	// Optional heuristic tunables, zero = engine defaults.
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	InitialTemp    float64
	CoolingRate    float64
}

// Searcher resolves a start system, queries the catalog sphere around it,
// filters candidates and plans a route.
type Searcher struct {
	EDSM *edsm.Client
	Opt  *engine.Optimizer
}

// NewSearcher wires a catalog client to a route optimizer.
func NewSearcher(client *edsm.Client, opt *engine.Optimizer) *Searcher {
	return &Searcher{EDSM: client, Opt: opt}
}

// Run executes one search. progress receives human-readable status text and
// may be nil; it must never block.
func (s *Searcher) Run(params Params, progress func(string)) (engine.Route, error) {
	report := progress
	if report == nil {
		report = func(string) {}
	}

	name := strings.TrimSpace(params.StartSystem)
	if name == "" {
		return engine.Route{}, fmt.Errorf("scan: no start system given")
	}
	if params.JumpRange <= 0 {
		return engine.Route{}, fmt.Errorf("scan: jump range must be positive, got %v", params.JumpRange)
	}

	report(fmt.Sprintf("Resolving %s...", name))
	doc, err := s.EDSM.System(name)
	if err != nil {
		return engine.Route{}, fmt.Errorf("scan: resolve start system: %w", err)
	}
	start := doc.ToStarSystem()
	if !start.Resolved() {
		return engine.Route{}, fmt.Errorf("scan: catalog has no coordinates for %s", name)
	}

	radius := edsm.ClampRadius(params.Radius)
	report(fmt.Sprintf("Querying systems within %d ly of %s...", radius, start.Name))
	docs, err := s.EDSM.SphereSystems(start.Name, radius)
	if err != nil {
		return engine.Route{}, fmt.Errorf("scan: sphere query: %w", err)
	}

	if params.DeepScan {
		report(fmt.Sprintf("Refreshing survey data for %d systems...", len(docs)))
		s.refreshBodies(docs)
	}

	candidates := engine.FilterCandidates(docs)
	// The sphere query includes its own origin; the start never competes
	// with the candidates.
	candidates = dropStart(candidates, start)
	if len(candidates) == 0 {
		report("0 systems found.")
		return engine.Route{}, nil
	}

	effectiveRange := params.JumpRange - jumpRangeMargin
	if effectiveRange < 1 {
		effectiveRange = 1
	}
	report(fmt.Sprintf("%d systems found, flight route calculations in progress...", len(candidates)))

	route, err := s.Opt.PlanRoute(start, candidates, engine.PlanParams{
		JumpRange:      effectiveRange,
		Algorithm:      params.Algorithm,
		Seed:           params.Seed,
		PopulationSize: params.PopulationSize,
		Generations:    params.Generations,
		CrossoverRate:  params.CrossoverRate,
		MutationRate:   params.MutationRate,
		InitialTemp:    params.InitialTemp,
		CoolingRate:    params.CoolingRate,
	})
	if err != nil {
		return engine.Route{}, err
	}

	report(fmt.Sprintf("%d systems found, calculations done. Final distance: %.2f ly",
		route.Covered(), route.TotalDistance))
	return route, nil
}

// refreshBodies fills in confirmed body counts from the catalog's bodies
// endpoint. Failures leave the sphere document untouched; a stale count only
// costs an extra candidate, never the scan.
func (s *Searcher) refreshBodies(docs []edsm.System) {
	var g errgroup.Group
	g.SetLimit(bodiesFetchLimit)

	// Each goroutine owns its own slice element; no locking needed.
	for i := range docs {
		i := i
		g.Go(func() error {
			res, err := s.EDSM.Bodies(docs[i].Name, docs[i].ID64)
			if err != nil {
				log.Printf("[Scan] Bodies(%s) error: %v", docs[i].Name, err)
				return nil
			}
			if res.BodyCount != nil {
				docs[i].BodyCount = res.BodyCount
			}
			docs[i].Bodies = stars.IntPtr(len(res.Bodies))
			return nil
		})
	}
	g.Wait()
}

func dropStart(candidates []*stars.StarSystem, start *stars.StarSystem) []*stars.StarSystem {
	out := candidates[:0]
	for _, c := range candidates {
		if c.Address != 0 && c.Address == start.Address {
			continue
		}
		if strings.EqualFold(c.Name, start.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}
