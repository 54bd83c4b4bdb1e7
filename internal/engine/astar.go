package engine

import (
	"math"

	"ed-rscan/internal/stars"
)

// pathfinder runs A* over the implicit reachability graph: nodes are the
// start system plus the candidates, and an edge exists between two systems
// iff their distance is within the jump range. Unlike the tour builders, the
// jump range is a hard constraint here.
type pathfinder struct {
	dist *DistanceEngine
}

// find searches from start toward the candidate nearest the goal point.
// g is accumulated travel distance; the heuristic is straight-line distance
// to the goal, which never overestimates the true remaining cost through
// jump-constrained hops. The open set is scanned linearly for the minimum
// f = g + h with an index tie-break, keeping expansion order deterministic.
// The returned path excludes the start; it is empty when the open set is
// exhausted before the goal is reached.
func (p *pathfinder) find(start *stars.StarSystem, candidates []*stars.StarSystem, jumpRange float64, goal stars.Point) []*stars.StarSystem {
	// Node 0 is the start; 1..n are candidates.
	nodes := make([]*stars.StarSystem, 0, len(candidates)+1)
	nodes = append(nodes, start)
	nodes = append(nodes, candidates...)

	goalIdx := 1
	goalD := p.dist.Distance(*nodes[1].Pos, goal)
	for i := 2; i < len(nodes); i++ {
		if d := p.dist.Distance(*nodes[i].Pos, goal); d < goalD {
			goalIdx, goalD = i, d
		}
	}

	h := make([]float64, len(nodes))
	for i, node := range nodes {
		h[i] = p.dist.Distance(*node.Pos, goal)
	}

	g := make([]float64, len(nodes))
	came := make([]int, len(nodes))
	inOpen := make([]bool, len(nodes))
	closed := make([]bool, len(nodes))
	for i := range g {
		g[i] = math.Inf(1)
		came[i] = -1
	}
	g[0] = 0
	open := []int{0}
	inOpen[0] = true

	for len(open) > 0 {
		// Linear scan for the lowest f; lower index wins ties.
		bestAt := 0
		for i := 1; i < len(open); i++ {
			fi := g[open[i]] + h[open[i]]
			fb := g[open[bestAt]] + h[open[bestAt]]
			if fi < fb || (fi == fb && open[i] < open[bestAt]) {
				bestAt = i
			}
		}
		cur := open[bestAt]
		open = append(open[:bestAt], open[bestAt+1:]...)
		inOpen[cur] = false

		if cur == goalIdx {
			return p.reconstruct(nodes, came, cur)
		}
		closed[cur] = true

		for next := 1; next < len(nodes); next++ {
			if next == cur || closed[next] {
				continue
			}
			hop := p.dist.Distance(*nodes[cur].Pos, *nodes[next].Pos)
			if hop > jumpRange {
				continue
			}
			tentative := g[cur] + hop
			if tentative >= g[next] {
				continue
			}
			g[next] = tentative
			came[next] = cur
			if !inOpen[next] {
				open = append(open, next)
				inOpen[next] = true
			}
		}
	}
	return nil
}

// reconstruct walks the back-pointers from the goal to the start, returning
// the visited systems in travel order with the start excluded.
func (p *pathfinder) reconstruct(nodes []*stars.StarSystem, came []int, cur int) []*stars.StarSystem {
	var rev []int
	for cur != -1 {
		rev = append(rev, cur)
		cur = came[cur]
	}
	path := make([]*stars.StarSystem, 0, len(rev)-1)
	for i := len(rev) - 2; i >= 0; i-- { // rev ends at the start node
		path = append(path, nodes[rev[i]])
	}
	return path
}
