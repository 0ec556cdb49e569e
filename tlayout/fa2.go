package tlayout

import (
	"math"
	"runtime"
	"sync"

	"github.com/richinsley/gexfviz/graphmodel"
)

// fa2Pass holds one row of spec.md §4.3's pass table.
type fa2Pass struct {
	name       string
	iterations int
	slowDown   float64
	barnesHut  bool
	theta      float64
}

func fa2Passes(cfg Config) []fa2Pass {
	f := cfg.IterationsFactor
	return []fa2Pass{
		{name: "rough", iterations: int(100 * f), slowDown: 5, barnesHut: cfg.BarnesHut, theta: 1.2},
		{name: "precision", iterations: int(10 * f), slowDown: 20, barnesHut: cfg.BarnesHut, theta: 0.3},
		{name: "slow-refine", iterations: int(2 * f), slowDown: 20, barnesHut: false, theta: 0.3},
	}
}

const jitterTolerance = 1.0

// runForceAtlas2 runs one pass of the ForceAtlas2 algorithm in place over g's
// node positions: repulsion (Barnes-Hut-approximated or brute-force),
// attraction along edges (optionally log-dampened), and gravity toward the
// origin (strong or distance-weakened), with the standard adaptive global
// speed / per-node swinging damping.
func runForceAtlas2(g *graphmodel.Graph, cfg Config, pass fa2Pass) {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return
	}
	mass := make([]float64, n)
	idxOf := make(map[string]int, n)
	for i, nd := range nodes {
		idxOf[nd.ID] = i
		mass[i] = 1 + float64(g.InDegree(nd.ID))
	}

	oldForce := make([][2]float64, n)

	for iter := 0; iter < pass.iterations; iter++ {
		force := computeForces(g, nodes, idxOf, mass, cfg, pass)

		var globalSwinging, globalTraction float64
		swinging := make([]float64, n)
		for i := range nodes {
			dfx := force[i][0] - oldForce[i][0]
			dfy := force[i][1] - oldForce[i][1]
			sw := math.Hypot(dfx, dfy)
			tr := math.Hypot(force[i][0]+oldForce[i][0], force[i][1]+oldForce[i][1]) / 2
			swinging[i] = sw
			globalSwinging += mass[i] * sw
			globalTraction += mass[i] * tr
		}
		if globalSwinging <= 0 {
			globalSwinging = 1e-9
		}
		globalSpeed := jitterTolerance * globalTraction / globalSwinging

		for i, nd := range nodes {
			localSpeed := globalSpeed / (1 + globalSpeed*math.Sqrt(swinging[i]))
			step := localSpeed / pass.slowDown
			nd.X += force[i][0] * step
			nd.Y += force[i][1] * step
		}
		oldForce = force
	}
}

// computeForces sums repulsion, attraction, and gravity for every node.
// Repulsion is partitioned across goroutines by node index range (spec.md
// §5's permitted parallelism boundary #1); attraction and gravity are O(E)
// and O(V) respectively and run inline.
func computeForces(g *graphmodel.Graph, nodes []*graphmodel.Node, idxOf map[string]int, mass []float64, cfg Config, pass fa2Pass) [][2]float64 {
	n := len(nodes)
	force := make([][2]float64, n)

	var tree *quadTree
	if pass.barnesHut {
		points := make([]massPoint, n)
		for i, nd := range nodes {
			points[i] = massPoint{id: nd.ID, x: nd.X, y: nd.Y, mass: mass[i]}
		}
		tree = buildQuadTree(points)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				var fx, fy float64
				if pass.barnesHut {
					fx, fy = repulsionBarnesHut(tree, nodes[i].X, nodes[i].Y, mass[i], cfg.Scaling, pass.theta)
				} else {
					fx, fy = repulsionBrute(nodes, mass, i, cfg.Scaling)
				}
				force[i][0] += fx
				force[i][1] += fy
			}
		}(lo, hi)
	}
	wg.Wait()

	for _, e := range g.Edges() {
		si, sok := idxOf[e.Source]
		ti, tok := idxOf[e.Target]
		if !sok || !tok || si == ti {
			continue
		}
		dx := nodes[ti].X - nodes[si].X
		dy := nodes[ti].Y - nodes[si].Y
		d := math.Hypot(dx, dy)
		if d < 1e-12 {
			continue
		}
		mag := d
		if cfg.LinLog {
			mag = math.Log(1 + d)
		}
		ux, uy := dx/d, dy/d
		force[si][0] += ux * mag
		force[si][1] += uy * mag
		force[ti][0] -= ux * mag
		force[ti][1] -= uy * mag
	}

	for i, nd := range nodes {
		d := math.Hypot(nd.X, nd.Y)
		if d < 1e-12 {
			continue
		}
		ux, uy := -nd.X/d, -nd.Y/d
		var mag float64
		if cfg.StrongGravity {
			mag = cfg.Gravity * mass[i]
		} else {
			mag = cfg.Gravity * mass[i] / d
		}
		force[i][0] += ux * mag
		force[i][1] += uy * mag
	}

	return force
}

func repulsionBrute(nodes []*graphmodel.Node, mass []float64, i int, scaling float64) (fx, fy float64) {
	for j, other := range nodes {
		if j == i {
			continue
		}
		dx := nodes[i].X - other.X
		dy := nodes[i].Y - other.Y
		d2 := dx*dx + dy*dy
		if d2 < 1e-12 {
			d2 = 1e-12
		}
		d := math.Sqrt(d2)
		mag := scaling * mass[i] * mass[j] / d
		fx += dx / d * mag
		fy += dy / d * mag
	}
	return
}

func repulsionBarnesHut(t *quadTree, x, y, selfMass, scaling, theta float64) (fx, fy float64) {
	if t == nil || t.count == 0 {
		return 0, 0
	}
	if t.count == 1 {
		dx := x - t.px
		dy := y - t.py
		d2 := dx*dx + dy*dy
		if d2 < 1e-12 {
			return 0, 0
		}
		d := math.Sqrt(d2)
		mag := scaling * selfMass * t.mass / d
		return dx / d * mag, dy / d * mag
	}
	dx := x - t.cx
	dy := y - t.cy
	d := math.Hypot(dx, dy)
	if d > 1e-12 && t.width()/d < theta {
		mag := scaling * selfMass * t.mass / d
		return dx / d * mag, dy / d * mag
	}
	for _, c := range t.children {
		if c == nil || c.count == 0 {
			continue
		}
		cfx, cfy := repulsionBarnesHut(c, x, y, selfMass, scaling, theta)
		fx += cfx
		fy += cfy
	}
	return
}
