package raster

import (
	"image/color"
	"math"
)

// renderNode is a node already mapped into render-space pixel coordinates.
type renderNode struct {
	ID       string
	Vid      uint32
	X, Y     float64
	Size     float64
	Color    color.RGBA
	HasColor bool
	Label    string
}

// computeVoronoi builds the Voronoi owner/distance field at a resolution
// capped by cfg.VoronoiResolutionMax, per spec.md §4.4. vids are assigned by
// the caller in node iteration order starting at 1; 0 means "no owner."
// Ties are resolved first-writer, matching the caller's iteration order.
func computeVoronoi(nodes []renderNode, fullW, fullH int, cfg Config) *VoronoiField {
	w, h, ratio := reducedResolution(fullW, fullH, cfg.VoronoiResolutionMax)
	field := newVoronoiField(w, h, fullW, fullH)

	rangePx := cfg.VoronoiRangePx * ratio
	if rangePx <= 0 {
		rangePx = 1
	}

	for _, n := range nodes {
		cx := n.X * ratio
		cy := n.Y * ratio
		size := n.Size * ratio
		radius := size + rangePx

		minX := maxInt(0, int(math.Floor(cx-radius)))
		maxX := minInt(w-1, int(math.Ceil(cx+radius)))
		minY := maxInt(0, int(math.Floor(cy-radius)))
		maxY := minInt(h-1, int(math.Ceil(cy+radius)))

		for py := minY; py <= maxY; py++ {
			for px := minX; px <= maxX; px++ {
				d := math.Hypot(float64(px)-cx, float64(py)-cy)
				if d > radius {
					continue
				}
				var dPrime float64
				if d <= size {
					dPrime = 0
				} else {
					dPrime = (d - size) / rangePx
					if dPrime > 1 {
						dPrime = 1
					}
				}
				u8 := uint8(dPrime * 255)

				i := field.idx(px, py)
				if field.Owner[i] == 0 || u8 < field.Dist[i] {
					field.Owner[i] = n.Vid
					field.Dist[i] = u8
				}
			}
		}
	}
	return field
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
