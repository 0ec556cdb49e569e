package raster

import "math"

// mmToPx converts a millimetre measurement to pixels at dpi, per spec.md
// §4.4's coordinate system.
func mmToPx(mm, dpi float64) float64 { return mm * dpi * 0.0393701 }

// ptToPx converts a point measurement to pixels at dpi.
func ptToPx(pt, dpi float64) float64 { return pt * dpi / 72 }

// rescalePlan is the result of the pre-render rescale computation: every
// graph-space (x,y,size) gets mapped through Apply.
type rescalePlan struct {
	cx, cy float64 // center of mass in graph space
	scale  float64
	drawW, drawH float64
	marginL, marginT float64
}

// Apply maps one node's graph-space coordinates/size into render-space
// pixels, per spec.md §4.4's x' = margin.l + drawW/2 + (x-cx)*s formula.
func (p rescalePlan) Apply(x, y, size float64) (x2, y2, size2 float64) {
	x2 = p.marginL + p.drawW/2 + (x-p.cx)*p.scale
	y2 = p.marginT + p.drawH/2 + (y-p.cy)*p.scale
	size2 = size * p.scale
	return
}

type nodeLike struct {
	X, Y, Size float64
}

// computeRescalePlan implements spec.md §4.4's pre-render rescale: center of
// mass as a blend of the size-weighted barycenter and the bounding-box
// geocenter, then a scale chosen so the drawable rectangle contains every
// node with its size, via either a bounding-box or inscribed-circle fit.
func computeRescalePlan(nodes []nodeLike, cfg Config) rescalePlan {
	dpi := cfg.RenderingDPI
	widthPx := mmToPx(cfg.WidthMM, dpi)
	heightPx := mmToPx(cfg.HeightMM, dpi)
	marginL := mmToPx(cfg.MarginLeftMM, dpi)
	marginR := mmToPx(cfg.MarginRightMM, dpi)
	marginT := mmToPx(cfg.MarginTopMM, dpi)
	marginB := mmToPx(cfg.MarginBottomMM, dpi)
	drawW := widthPx - marginL - marginR
	drawH := heightPx - marginT - marginB

	if len(nodes) == 0 {
		return rescalePlan{scale: 1, drawW: drawW, drawH: drawH, marginL: marginL, marginT: marginT}
	}

	var sumX, sumY, sumW float64
	minX, maxX := nodes[0].X-nodes[0].Size, nodes[0].X+nodes[0].Size
	minY, maxY := nodes[0].Y-nodes[0].Size, nodes[0].Y+nodes[0].Size
	for _, n := range nodes {
		w := n.Size
		if w <= 0 {
			w = 1e-6
		}
		sumX += n.X * w
		sumY += n.Y * w
		sumW += w
		if n.X-n.Size < minX {
			minX = n.X - n.Size
		}
		if n.X+n.Size > maxX {
			maxX = n.X + n.Size
		}
		if n.Y-n.Size < minY {
			minY = n.Y - n.Size
		}
		if n.Y+n.Size > maxY {
			maxY = n.Y + n.Size
		}
	}
	bx, by := sumX/sumW, sumY/sumW
	gx, gy := (minX+maxX)/2, (minY+maxY)/2
	ratio := cfg.UseBarycenterRatio
	cx := ratio*bx + (1-ratio)*gx
	cy := ratio*by + (1-ratio)*gy

	halfW := maxX - minX
	halfH := maxY - minY
	if halfW <= 0 {
		halfW = 1
	}
	if halfH <= 0 {
		halfH = 1
	}

	var scale float64
	switch cfg.FitMode {
	case FitInscribedCircle:
		maxR := 0.0
		for _, n := range nodes {
			r := math.Hypot(n.X-cx, n.Y-cy) + n.Size
			if r > maxR {
				maxR = r
			}
		}
		if maxR <= 0 {
			maxR = 1
		}
		scale = math.Min(drawW, drawH) / 2 / maxR
	default:
		sx := drawW / halfW
		sy := drawH / halfH
		scale = math.Min(sx, sy)
	}

	return rescalePlan{cx: cx, cy: cy, scale: scale, drawW: drawW, drawH: drawH, marginL: marginL, marginT: marginT}
}

func renderWidthPx(cfg Config) int  { return int(mmToPx(cfg.WidthMM, cfg.RenderingDPI)) }
func renderHeightPx(cfg Config) int { return int(mmToPx(cfg.HeightMM, cfg.RenderingDPI)) }
func outputWidthPx(cfg Config) int  { return int(mmToPx(cfg.WidthMM, cfg.OutputDPI)) }
func outputHeightPx(cfg Config) int { return int(mmToPx(cfg.HeightMM, cfg.OutputDPI)) }
