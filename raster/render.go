package raster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/richinsley/gexfviz/graphmodel"
)

// RenderError reports which rasterizer layer failed; per spec.md §7 this
// maps to the RenderFailure category the CLI logs and continues past.
type RenderError struct {
	Layer string
	Err   error
}

func (e *RenderError) Error() string { return "raster: " + e.Layer + ": " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// renderState is the plain value type threading render-space data between
// the build/compute/draw stages below, replacing the closure-captured
// namespace a naive port would reach for (spec.md §9): every stage takes and
// returns state explicitly instead of closing over mutable shared locals.
type renderState struct {
	cfg          Config
	plan         rescalePlan
	renderW      int
	renderH      int
	nodes        []renderNode
	edges        []renderEdge
	vidOf        map[string]uint32
	voronoi      *VoronoiField
	heatmap      *HeatmapField
	hillshade    *hillshadeField
}

// Render turns one laid-out snapshot graph into a fully composited RGBA
// frame at cfg.OutputDPI, per spec.md §4.4's full rasterization pipeline.
// Each stage is isolated so a single failing layer yields a *RenderError
// naming it rather than losing the whole frame silently.
func Render(g *graphmodel.Graph, cfg Config) (*image.RGBA, error) {
	st, err := buildRenderState(g, cfg)
	if err != nil {
		return nil, err
	}

	base := composeBase(st.renderW, st.renderH, st.heatmap, st.hillshade, st.cfg)

	if err := safely("edges", func() { drawEdges(base, st.edges, st.voronoi, st.vidOf, st.cfg) }); err != nil {
		return nil, err
	}
	if err := safely("nodes", func() { drawNodes(base, st.nodes, st.cfg) }); err != nil {
		return nil, err
	}
	if err := safely("labels", func() { drawLabels(base, st.nodes, st.cfg) }); err != nil {
		return nil, err
	}

	out, err := resampleToOutput(base, st.cfg)
	if err != nil {
		return nil, &RenderError{Layer: "resample", Err: err}
	}
	return out, nil
}

// buildRenderState maps every node/edge into render-space pixels via the
// rescale plan, assigns Voronoi vids in node iteration order, and computes
// the Voronoi and heatmap/hillshade fields up front so the drawing stages
// are pure consumers.
func buildRenderState(g *graphmodel.Graph, cfg Config) (*renderState, error) {
	st := &renderState{cfg: cfg, vidOf: make(map[string]uint32)}

	gNodes := g.Nodes()
	likes := make([]nodeLike, len(gNodes))
	for i, n := range gNodes {
		likes[i] = nodeLike{X: n.X, Y: n.Y, Size: n.Size}
	}
	st.plan = computeRescalePlan(likes, cfg)
	st.renderW = renderWidthPx(cfg)
	st.renderH = renderHeightPx(cfg)

	st.nodes = make([]renderNode, len(gNodes))
	for i, n := range gNodes {
		x, y, size := st.plan.Apply(n.X, n.Y, n.Size)
		vid := uint32(i + 1)
		st.vidOf[n.ID] = vid
		st.nodes[i] = renderNode{
			ID: n.ID, Vid: vid,
			X: x, Y: y, Size: size,
			Color: color.RGBA{R: n.Color.R, G: n.Color.G, B: n.Color.B, A: 255}, HasColor: n.HasColor,
			Label: n.Label,
		}
	}

	gEdges := g.Edges()
	st.edges = make([]renderEdge, len(gEdges))
	for i, e := range gEdges {
		sn, tn := g.Node(e.Source), g.Node(e.Target)
		x1, y1, _ := st.plan.Apply(sn.X, sn.Y, sn.Size)
		x2, y2, _ := st.plan.Apply(tn.X, tn.Y, tn.Size)
		st.edges[i] = renderEdge{
			SourceID: e.Source, TargetID: e.Target,
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Weight: 1, Directed: e.Directed,
		}
	}

	var err error
	if e := safely("voronoi", func() { st.voronoi = computeVoronoi(st.nodes, st.renderW, st.renderH, cfg) }); e != nil {
		err = e
	}
	if err == nil {
		if e := safely("heatmap", func() { st.heatmap = computeHeatmap(st.nodes, st.renderW, st.renderH, cfg) }); e != nil {
			err = e
		}
	}
	if err == nil && cfg.Hillshade && st.heatmap != nil {
		if e := safely("hillshade", func() { st.hillshade = computeHillshade(st.heatmap, cfg) }); e != nil {
			err = e
		}
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// safely runs fn, converting a panic into a *RenderError naming layer, so one
// malformed layer is reported instead of crashing the process. The failing
// layer is not omitted on its own: Render and buildRenderState return the
// error and no frame for that snapshot.
func safely(layer string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Layer: layer, Err: panicAsError(r)}
		}
	}()
	fn()
	return nil
}

func panicAsError(r interface{}) error {
	if e, ok := r.(error); ok {
		return e
	}
	return &RenderError{Layer: "panic", Err: errString("render panic")}
}

type errString string

func (e errString) Error() string { return string(e) }

// resampleToOutput bilinearly resizes the render-resolution canvas to
// cfg.OutputDPI, per spec.md §4.4's separate rendering/output DPI knobs.
func resampleToOutput(src *image.RGBA, cfg Config) (*image.RGBA, error) {
	ow, oh := outputWidthPx(cfg), outputHeightPx(cfg)
	if ow == src.Bounds().Dx() && oh == src.Bounds().Dy() {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, ow, oh))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}
