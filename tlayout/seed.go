package tlayout

import (
	"math"
	"math/rand"

	"github.com/richinsley/gexfviz/graphmodel"
)

// seedPositions implements spec.md §4.3's position-seeding policy. When prev
// is nil or empty this is a standalone single-snapshot run: every node gets
// a uniform random position. Otherwise nodes inherit coordinates from prev
// where present; every other node is seeded from the mean of its neighbors
// that DO have inherited coordinates, computed against the read-only prev
// index so the result is independent of node iteration order. A node with no
// positioned neighbors falls back to a uniform random position.
func seedPositions(g *graphmodel.Graph, prev *PositionIndex, cfg Config) {
	order := g.Order()
	side := math.Sqrt(float64(order)) * 100
	rng := rand.New(rand.NewSource(cfg.Seed))

	standalone := prev == nil || prev.Len() == 0
	if standalone {
		for _, n := range g.Nodes() {
			n.X = (rng.Float64()*2 - 1) * side / 2
			n.Y = (rng.Float64()*2 - 1) * side / 2
		}
		return
	}

	inherited := make(map[string]bool)
	for _, n := range g.Nodes() {
		if x, y, ok := prev.Get(n.ID); ok {
			n.X, n.Y = x, y
			inherited[n.ID] = true
		}
	}

	for _, n := range g.Nodes() {
		if inherited[n.ID] {
			continue
		}
		sumX, sumY, count := 0.0, 0.0, 0
		g.ForEachNeighbor(n.ID, func(nb string, _ *graphmodel.Edge) {
			if x, y, ok := prev.Get(nb); ok {
				sumX += x
				sumY += y
				count++
			}
		})
		if count > 0 {
			n.X = sumX / float64(count)
			n.Y = sumY / float64(count)
		} else {
			n.X = (rng.Float64()*2 - 1) * side / 2
			n.Y = (rng.Float64()*2 - 1) * side / 2
		}
	}
}
