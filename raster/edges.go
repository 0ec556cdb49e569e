package raster

import (
	"image"
	"image/color"
	"math"
)

// renderEdge is an edge already mapped into render-space pixel coordinates.
type renderEdge struct {
	SourceID, TargetID string
	X1, Y1             float64
	X2, Y2             float64
	Weight             float64
	Color              color.RGBA
	HasColor           bool
	Directed           bool
}

// edgeSmoothingTaps is the 5-tap smoothing filter spec.md §4.4 applies along
// each polyline before drawing, to soften the per-point Voronoi opacity.
var edgeSmoothingTaps = []float64{0.15, 0.25, 0.2, 0.25, 0.15}

// buildEdgePolyline produces the sequence of points an edge is drawn along:
// a straight two-point line, or for curved edges a quadratic Bezier offset
// perpendicular to the chord by H = α * length, per spec.md §4.4.
func buildEdgePolyline(e renderEdge, curved bool, alpha float64, segments int) []image.Point {
	if segments < 2 {
		segments = 2
	}
	if !curved {
		pts := make([]image.Point, segments)
		for i := 0; i < segments; i++ {
			t := float64(i) / float64(segments-1)
			pts[i] = roundPoint(lerp(e.X1, e.X2, t), lerp(e.Y1, e.Y2, t))
		}
		return pts
	}

	dx := e.X2 - e.X1
	dy := e.Y2 - e.Y1
	length := math.Hypot(dx, dy)
	h := alpha * length
	var nx, ny float64
	if length > 1e-9 {
		nx, ny = -dy/length, dx/length
	}
	mx := (e.X1+e.X2)/2 + nx*h
	my := (e.Y1+e.Y2)/2 + ny*h

	pts := make([]image.Point, segments)
	for i := 0; i < segments; i++ {
		t := float64(i) / float64(segments-1)
		// quadratic bezier through (X1,Y1) -> control (mx,my) -> (X2,Y2)
		it := 1 - t
		x := it*it*e.X1 + 2*it*t*mx + t*t*e.X2
		y := it*it*e.Y1 + 2*it*t*my + t*t*e.Y2
		pts[i] = roundPoint(x, y)
	}
	return pts
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func roundPoint(x, y float64) image.Point {
	return image.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// pointOpacities samples the Voronoi field at each polyline point, attenuating
// edges as they cross territory owned by an unrelated node, then applies the
// 5-tap smoothing filter. Endpoint opacity is held at 1 regardless of
// ownership so edges never fade at the nodes they connect.
func pointOpacities(pts []image.Point, e renderEdge, vf *VoronoiField, sourceVid, targetVid uint32, minOpacity float64) []float64 {
	raw := make([]float64, len(pts))
	for i, p := range pts {
		if i == 0 || i == len(pts)-1 {
			raw[i] = 1
			continue
		}
		owner, dist := vf.SampleNearest(float64(p.X), float64(p.Y))
		if owner == 0 || owner == sourceVid || owner == targetVid {
			raw[i] = 1
			continue
		}
		// Fully inside foreign territory (dist==0) attenuates hardest;
		// fading out toward the edge of that node's Voronoi cell.
		t := float64(dist) / 255
		op := minOpacity + (1-minOpacity)*t
		raw[i] = op
	}

	smoothed := make([]float64, len(raw))
	half := len(edgeSmoothingTaps) / 2
	for i := range raw {
		sum, wsum := 0.0, 0.0
		for k, tap := range edgeSmoothingTaps {
			j := i + (k - half)
			if j < 0 || j >= len(raw) {
				continue
			}
			sum += raw[j] * tap
			wsum += tap
		}
		if wsum > 0 {
			smoothed[i] = sum / wsum
		} else {
			smoothed[i] = raw[i]
		}
		if smoothed[i] < minOpacity {
			smoothed[i] = minOpacity
		}
	}
	if len(smoothed) > 0 {
		smoothed[0] = 1
		smoothed[len(smoothed)-1] = 1
	}
	return smoothed
}

// drawEdges rasterizes every edge onto dst, segment by segment, alpha-blending
// each segment's color at its smoothed Voronoi-derived opacity. Quality
// EdgeQualityFast draws single-pixel segments; EdgeQualityHigh widens strokes
// by edge weight.
func drawEdges(dst *image.RGBA, edges []renderEdge, vf *VoronoiField, vidOf map[string]uint32, cfg Config) {
	segments := 24
	if cfg.EdgeQuality == EdgeQualityFast {
		segments = 8
	}
	alpha := 0.15
	minOpacity := 0.25

	for _, e := range edges {
		pts := buildEdgePolyline(e, cfg.EdgeCurved, alpha, segments)
		sourceVid := vidOf[e.SourceID]
		targetVid := vidOf[e.TargetID]
		opacities := pointOpacities(pts, e, vf, sourceVid, targetVid, minOpacity)

		col := e.Color
		if !e.HasColor {
			col = color.RGBA{R: 120, G: 120, B: 120, A: 255}
		}

		width := 1
		if cfg.EdgeQuality == EdgeQualityHigh {
			width = 1 + int(math.Round(e.Weight))
			if width > 6 {
				width = 6
			}
		}

		for i := 0; i < len(pts)-1; i++ {
			op := (opacities[i] + opacities[i+1]) / 2
			drawSegment(dst, pts[i], pts[i+1], col, op, width)
		}
	}
}

// drawSegment walks a Bresenham line between a and b, alpha-blending col at
// the given opacity into every pixel within width/2 of the line.
func drawSegment(dst *image.RGBA, a, b image.Point, col color.RGBA, opacity float64, width int) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	half := width / 2
	for {
		for ox := -half; ox <= half; ox++ {
			for oy := -half; oy <= half; oy++ {
				blendPixel(dst, x0+ox, y0+oy, col, opacity)
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func blendPixel(dst *image.RGBA, x, y int, col color.RGBA, opacity float64) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	dstCol := dst.RGBAAt(x, y)
	a := opacity * (float64(col.A) / 255)
	r := uint8(float64(col.R)*a + float64(dstCol.R)*(1-a))
	g := uint8(float64(col.G)*a + float64(dstCol.G)*(1-a))
	bl := uint8(float64(col.B)*a + float64(dstCol.B)*(1-a))
	al := uint8(math.Min(255, float64(dstCol.A)+255*a))
	dst.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: al})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
