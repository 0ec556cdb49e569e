package graphmodel

import "testing"

func TestAddNodeDuplicate(t *testing.T) {
	g := New()
	if _, err := g.AddNode("a"); err != nil {
		t.Fatalf("unexpected error adding node: %v", err)
	}
	if _, err := g.AddNode("a"); err == nil {
		t.Fatal("expected duplicate node error, got nil")
	}
}

func TestAddEdgeRejectsSelfLoop(t *testing.T) {
	g := New()
	g.AddNode("a")
	if _, err := g.AddEdge("a", "a", false); err == nil {
		t.Fatal("expected self-loop error, got nil")
	}
}

func TestAddEdgeRequiresExistingEndpoints(t *testing.T) {
	g := New()
	g.AddNode("a")
	if _, err := g.AddEdge("a", "missing", false); err == nil {
		t.Fatal("expected missing endpoint error, got nil")
	}
}

func TestNodesPreservesInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		g.AddNode(id)
	}
	nodes := g.Nodes()
	if len(nodes) != len(ids) {
		t.Fatalf("expected %d nodes, got %d", len(ids), len(nodes))
	}
	for i, n := range nodes {
		if n.ID != ids[i] {
			t.Errorf("position %d: expected %q, got %q", i, ids[i], n.ID)
		}
	}
}

func TestInDegreeMixedGraph(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	// directed b->a, undirected a-c: a's in-degree should be 2.
	if _, err := g.AddEdge("b", "a", true); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddEdge("a", "c", false); err != nil {
		t.Fatal(err)
	}
	if got := g.InDegree("a"); got != 2 {
		t.Errorf("expected in-degree 2 for a, got %d", got)
	}
	// b has neither incoming directed nor undirected edges.
	if got := g.InDegree("b"); got != 0 {
		t.Errorf("expected in-degree 0 for b, got %d", got)
	}
}

func TestForEachNeighborSymmetric(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddEdge("a", "b", true)

	var seenFromA, seenFromB []string
	g.ForEachNeighbor("a", func(nb string, e *Edge) { seenFromA = append(seenFromA, nb) })
	g.ForEachNeighbor("b", func(nb string, e *Edge) { seenFromB = append(seenFromB, nb) })

	if len(seenFromA) != 1 || seenFromA[0] != "b" {
		t.Errorf("expected a's neighbor to be b, got %v", seenFromA)
	}
	if len(seenFromB) != 1 || seenFromB[0] != "a" {
		t.Errorf("expected b's neighbor to be a, got %v", seenFromB)
	}
}
