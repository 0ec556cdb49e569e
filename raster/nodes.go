package raster

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// sortNodesForDrawing orders nodes largest-first (ties broken by leftmost X
// winning), per spec.md §4.4, then reverses so the draw loop paints the
// smallest nodes first and the largest nodes last, on top.
func sortNodesForDrawing(nodes []renderNode) []renderNode {
	sorted := make([]renderNode, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].X < sorted[j].X
	})
	for l, r := 0, len(sorted)-1; l < r; l, r = l+1, r-1 {
		sorted[l], sorted[r] = sorted[r], sorted[l]
	}
	return sorted
}

// drawNodes paints each node disc, smallest-behind-largest per
// sortNodesForDrawing, with an optional stroke ring.
func drawNodes(dst *image.RGBA, nodes []renderNode, cfg Config) {
	ordered := sortNodesForDrawing(nodes)
	for _, n := range ordered {
		col := n.Color
		if !n.HasColor {
			col = defaultNodeColor
		}
		radius := n.Size * cfg.NodeSizeMultiplier
		drawDisc(dst, n.X, n.Y, radius, col)
		if cfg.HasStroke {
			strokePx := mmToPx(cfg.StrokeWidthMM, cfg.RenderingDPI)
			drawRing(dst, n.X, n.Y, radius, strokePx, cfg.StrokeColor)
		}
	}
}

// drawDisc fills a filled circle centered at (cx,cy) with radius r, opaque.
func drawDisc(dst *image.RGBA, cx, cy, r float64, col color.RGBA) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	minX := maxInt(b.Min.X, int(math.Floor(cx-r)))
	maxX := minInt(b.Max.X-1, int(math.Ceil(cx+r)))
	minY := maxInt(b.Min.Y, int(math.Floor(cy-r)))
	maxY := minInt(b.Max.Y-1, int(math.Ceil(cy+r)))
	r2 := r * r

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			ddx := float64(x) + 0.5 - cx
			ddy := float64(y) + 0.5 - cy
			d2 := ddx*ddx + ddy*ddy
			if d2 > r2 {
				continue
			}
			// anti-alias the outer ~1px rim
			edge := r - math.Sqrt(d2)
			if edge < 1 {
				blendPixel(dst, x, y, col, edge)
			} else {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}

// drawRing strokes an annulus of the given width just outside radius r.
func drawRing(dst *image.RGBA, cx, cy, r, width float64, col color.RGBA) {
	if width <= 0 {
		return
	}
	outer := r + width
	b := dst.Bounds()
	minX := maxInt(b.Min.X, int(math.Floor(cx-outer)))
	maxX := minInt(b.Max.X-1, int(math.Ceil(cx+outer)))
	minY := maxInt(b.Min.Y, int(math.Floor(cy-outer)))
	maxY := minInt(b.Max.Y-1, int(math.Ceil(cy+outer)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= r && d <= outer {
				blendPixel(dst, x, y, col, 1)
			}
		}
	}
}
