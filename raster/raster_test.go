package raster

import (
	"image/color"
	"testing"

	"github.com/richinsley/gexfviz/graphmodel"
)

func buildStarGraph(t *testing.T, n int) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New()
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		node, err := g.AddNode(id)
		if err != nil {
			t.Fatal(err)
		}
		node.Size = 3
		node.X = float64(i) * 20
		node.Y = 0
		node.Label = id
	}
	for i := 1; i < n; i++ {
		if _, err := g.AddEdge("a", string(rune('a'+i)), false); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestVoronoiOwnerIsZeroOrValidVid(t *testing.T) {
	g := buildStarGraph(t, 5)
	cfg := DefaultConfig()
	st, err := buildRenderState(g, cfg)
	if err != nil {
		t.Fatal(err)
	}

	maxVid := uint32(len(st.nodes))
	for i, owner := range st.voronoi.Owner {
		if owner != 0 && (owner < 1 || owner > maxVid) {
			t.Fatalf("voronoi pixel %d: owner %d out of range [0,%d]", i, owner, maxVid)
		}
	}
}

func TestHeatmapNonNegative(t *testing.T) {
	g := buildStarGraph(t, 6)
	cfg := DefaultConfig()
	st, err := buildRenderState(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range st.heatmap.Values {
		if v < 0 {
			t.Fatalf("heatmap pixel %d: negative density %v", i, v)
		}
	}
	if st.heatmap.HMax <= 0 {
		t.Fatalf("expected positive HMax, got %v", st.heatmap.HMax)
	}
}

func TestHeatmapEmptyGraphIsZero(t *testing.T) {
	g := graphmodel.New()
	cfg := DefaultConfig()
	st, err := buildRenderState(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range st.heatmap.Values {
		if v != 0 {
			t.Fatalf("expected all-zero heatmap on empty graph, got %v", v)
		}
	}
}

func TestLabelCollisionKeepsOneOfOverlappingNodes(t *testing.T) {
	g := graphmodel.New()
	for _, id := range []string{"x", "y"} {
		n, err := g.AddNode(id)
		if err != nil {
			t.Fatal(err)
		}
		n.Size = 10
		n.X, n.Y = 100, 100
		n.Label = id
	}
	cfg := DefaultConfig()
	st, err := buildRenderState(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	dst := composeBase(st.renderW, st.renderH, st.heatmap, st.hillshade, st.cfg)
	placed := drawLabels(dst, st.nodes, st.cfg)

	// With two identical overlapping nodes the collision bitmap must reject
	// the second placement, and the canvas must keep its bounds.
	if placed != 1 {
		t.Fatalf("expected exactly 1 label placed for two overlapping nodes, got %d", placed)
	}
	if dst.Bounds().Dx() != st.renderW || dst.Bounds().Dy() != st.renderH {
		t.Fatalf("unexpected canvas size after label pass")
	}
}

func TestEdgeOpacityNeverBelowMinimumNearEndpoints(t *testing.T) {
	e := renderEdge{SourceID: "a", TargetID: "b", X1: 0, Y1: 0, X2: 100, Y2: 0}
	pts := buildEdgePolyline(e, false, 0.15, 8)
	vf := newVoronoiField(1, 1, 200, 200)
	ops := pointOpacities(pts, e, vf, 1, 2, 0.25)
	for i, op := range ops {
		if op < 0.25 {
			t.Fatalf("point %d: opacity %v below floor 0.25", i, op)
		}
	}
	if ops[0] != 1 || ops[len(ops)-1] != 1 {
		t.Fatalf("endpoint opacity must stay at 1, got %v / %v", ops[0], ops[len(ops)-1])
	}
}

func TestRenderProducesOutputSizedCanvas(t *testing.T) {
	g := buildStarGraph(t, 4)
	cfg := DefaultConfig()
	cfg.WidthMM, cfg.HeightMM = 50, 50
	cfg.RenderingDPI, cfg.OutputDPI = 96, 48

	img, err := Render(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	wantW, wantH := outputWidthPx(cfg), outputHeightPx(cfg)
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Fatalf("got %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), wantW, wantH)
	}
}

func TestClampLabelColorStaysInBand(t *testing.T) {
	bright := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	clamped := clampLabelColor(bright)
	_, chroma, l := rgbToHCL(clamped)
	if chroma < -1e-6 || chroma > 70+1e-6 {
		t.Fatalf("chroma %v out of band", chroma)
	}
	if l < 2-1e-6 || l > 50+1e-6 {
		t.Fatalf("lightness %v out of band", l)
	}
}

func TestSortNodesForDrawingLargestFirstThenReversed(t *testing.T) {
	nodes := []renderNode{
		{ID: "small", Size: 1, X: 5},
		{ID: "big-right", Size: 10, X: 5},
		{ID: "big-left", Size: 10, X: 1},
	}
	ordered := sortNodesForDrawing(nodes)
	// largest-first with leftmost winning ties means draw order (reversed)
	// ends with big-left last, i.e. drawn on top.
	if ordered[len(ordered)-1].ID != "big-left" {
		t.Fatalf("expected big-left drawn last (on top), got order %v", ids(ordered))
	}
}

func TestSortLabelCandidatesDeterministicOnTies(t *testing.T) {
	forward := []labelCandidate{
		{node: renderNode{ID: "small", Size: 1, X: 5}},
		{node: renderNode{ID: "big-right", Size: 10, X: 5}},
		{node: renderNode{ID: "big-left", Size: 10, X: 1}},
	}
	reversed := []labelCandidate{forward[2], forward[1], forward[0]}

	sortLabelCandidates(forward)
	sortLabelCandidates(reversed)

	for i := range forward {
		if forward[i].node.ID != reversed[i].node.ID {
			t.Fatalf("reordering equal-size input changed sort outcome at %d: %v vs %v",
				i, candidateIDs(forward), candidateIDs(reversed))
		}
	}
	if forward[0].node.ID != "big-left" {
		t.Fatalf("expected big-left (size ties broken by leftmost X) first, got %v", candidateIDs(forward))
	}
}

func candidateIDs(candidates []labelCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.node.ID
	}
	return out
}

func ids(nodes []renderNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
