package tlayout

import (
	"math"
	"testing"

	"github.com/richinsley/gexfviz/graphmodel"
)

func buildChain(t *testing.T, n int) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New()
	for i := 0; i < n; i++ {
		if _, err := g.AddNode(string(rune('a' + i))); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < n-1; i++ {
		if _, err := g.AddEdge(string(rune('a'+i)), string(rune('a'+i+1)), false); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestApplySizingPositive(t *testing.T) {
	g := buildChain(t, 4)
	applySizing(g, DefaultConfig())
	for _, n := range g.Nodes() {
		if !(n.Size > 0) {
			t.Errorf("node %s: expected size > 0, got %v", n.ID, n.Size)
		}
	}
}

func TestSeedStandaloneGivesFinitePositions(t *testing.T) {
	g := buildChain(t, 5)
	seedPositions(g, nil, DefaultConfig())
	for _, n := range g.Nodes() {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			t.Errorf("node %s: expected finite position, got (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

// Invariant from spec.md §8: a node lacking both inherited and prior
// coordinates (and with no positioned neighbors) receives a random position
// within sqrt(order)*100.
func TestSeedFallsBackToRandomWithinBounds(t *testing.T) {
	g := buildChain(t, 3)
	// prev is non-empty (so this is not a standalone run) but holds no node
	// of g: nothing is inherited and no neighbor has a position.
	prev := NewPositionIndex()
	prev.Set("elsewhere", 0, 0)
	cfg := DefaultConfig()
	seedPositions(g, prev, cfg)
	side := math.Sqrt(float64(g.Order())) * 100
	for _, n := range g.Nodes() {
		if n.X < -side/2-1e-9 || n.X > side/2+1e-9 {
			t.Errorf("node %s: x=%v outside [-%v,%v]", n.ID, n.X, side/2, side/2)
		}
	}
}

func TestSeedIsPermutationInvariant(t *testing.T) {
	// Two isolated new nodes whose only positioned neighbor is shared:
	// reordering node insertion must not change the computed mean position.
	build := func(order []string) *graphmodel.Graph {
		g := graphmodel.New()
		for _, id := range order {
			g.AddNode(id)
		}
		g.AddEdge("hub", "x", false)
		g.AddEdge("hub", "y", false)
		return g
	}
	prev := NewPositionIndex()
	prev.Set("hub", 10, 20)

	g1 := build([]string{"hub", "x", "y"})
	g2 := build([]string{"y", "x", "hub"})

	seedPositions(g1, prev, DefaultConfig())
	seedPositions(g2, prev, DefaultConfig())

	x1, y1, _ := func() (float64, float64, bool) {
		n := g1.Node("x")
		return n.X, n.Y, true
	}()
	x2, y2, _ := func() (float64, float64, bool) {
		n := g2.Node("x")
		return n.X, n.Y, true
	}()
	if x1 != x2 || y1 != y2 {
		t.Errorf("expected permutation-invariant seeding for node x, got (%v,%v) vs (%v,%v)", x1, y1, x2, y2)
	}
}

// Scenario 3 from spec.md §8: a persisted node should seed directly from its
// previous position (distance 0 before any force is applied).
func TestPersistedNodeSeedsFromPrevious(t *testing.T) {
	g := buildChain(t, 2)
	prev := NewPositionIndex()
	prev.Set("a", 5, 7)
	prev.Set("b", -3, 2)
	seedPositions(g, prev, DefaultConfig())
	if g.Node("a").X != 5 || g.Node("a").Y != 7 {
		t.Errorf("expected node a to inherit (5,7), got (%v,%v)", g.Node("a").X, g.Node("a").Y)
	}
}

// Invariant 4 from spec.md §8: after overlap removal with margin 0.9,
// distance(i,j) >= (size(i)+size(j))*1.05 - epsilon for every pair.
func TestOverlapRemovalInvariant(t *testing.T) {
	g := graphmodel.New()
	for i := 0; i < 6; i++ {
		n, _ := g.AddNode(string(rune('a' + i)))
		n.Size = 5
		n.X = float64(i) * 0.1 // start nearly coincident
		n.Y = 0
	}
	runOverlapSweep(g, overlapSweep{maxIterations: 200, margin: 0.9, speed: 8})

	nodes := g.Nodes()
	const eps = 1e-6
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			required := (nodes[i].Size+nodes[j].Size)*overlapRatio - eps
			if d < required {
				t.Errorf("nodes %s,%s: distance %v below required %v", nodes[i].ID, nodes[j].ID, d, required)
			}
		}
	}
}

func TestRunProducesFinitePositionsAndSizes(t *testing.T) {
	g := buildChain(t, 6)
	cfg := DefaultConfig()
	cfg.IterationsFactor = 0.1 // keep the test fast
	next, err := Run(nil, g, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Len() != g.Order() {
		t.Fatalf("expected position index with %d entries, got %d", g.Order(), next.Len())
	}
	for _, n := range g.Nodes() {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			t.Errorf("node %s: expected finite position, got (%v,%v)", n.ID, n.X, n.Y)
		}
		if !(n.Size > 0) {
			t.Errorf("node %s: expected size > 0, got %v", n.ID, n.Size)
		}
	}
}
