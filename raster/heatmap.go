package raster

import "math"

// computeHeatmap builds the additive density field at a resolution capped
// by cfg.HeatmapResolutionMax, per spec.md §4.4. Each pixel sums every
// node's falloff contribution, normalized by node count (not by the max);
// HMax is recorded separately for hillshading/hypsometric scaling.
//
// Contributions beyond ~10 spread-widths of a node are negligible (under
// 1%) and are skipped to keep the per-pixel accumulation bounded; this is a
// practical radius cutoff, not a silent feature drop.
func computeHeatmap(nodes []renderNode, fullW, fullH int, cfg Config) *HeatmapField {
	w, h, ratio := reducedResolution(fullW, fullH, cfg.HeatmapResolutionMax)
	field := newHeatmapField(w, h, fullW, fullH)
	if len(nodes) == 0 {
		return field
	}

	spreadPx := cfg.HeatmapSpreadMM * ratio * cfg.RenderingDPI * 0.0393701
	if spreadPx <= 0 {
		spreadPx = 1
	}
	const cutoffSpreads = 10

	for _, n := range nodes {
		cx := n.X * ratio
		cy := n.Y * ratio
		size := n.Size * ratio * cfg.HeatmapSizeRatio
		radius := size + spreadPx*cutoffSpreads

		minX := maxInt(0, int(math.Floor(cx-radius)))
		maxX := minInt(w-1, int(math.Ceil(cx+radius)))
		minY := maxInt(0, int(math.Floor(cy-radius)))
		maxY := minInt(h-1, int(math.Ceil(cy+radius)))

		for py := minY; py <= maxY; py++ {
			for px := minX; px <= maxX; px++ {
				d := math.Hypot(float64(px)-cx, float64(py)-cy)
				x := math.Max(0, d-size) / spreadPx
				contribution := 1 / (1 + x*x)
				field.Values[field.idx(px, py)] += contribution
			}
		}
	}

	n := float64(len(nodes))
	hMax := 0.0
	for i, v := range field.Values {
		v /= n
		field.Values[i] = v
		if v > hMax {
			hMax = v
		}
	}
	field.HMax = hMax
	return field
}

// hillshadeField holds the per-pixel Lambertian reflectance (L) and
// normalized height ratio, at the same resolution as the heatmap field it
// was derived from, ready for bilinear unpacking during compositing.
type hillshadeField struct {
	W, H, FullW, FullH int
	L                  []float64
	HeightRatio        []float64
}

// computeHillshade derives slope/aspect/reflectance from the heatmap field
// per spec.md §4.4: dx/dy via centered differences (border pixels reuse the
// center value), z scaled by strength*sqrt(W*H), then the standard
// hillshading Lambertian formula.
func computeHillshade(hm *HeatmapField, cfg Config) *hillshadeField {
	w, h := hm.W, hm.H
	out := &hillshadeField{W: w, H: h, FullW: hm.FullW, FullH: hm.FullH, L: make([]float64, w*h), HeightRatio: make([]float64, w*h)}
	if w == 0 || h == 0 {
		return out
	}

	z := cfg.HillshadeStrength * math.Sqrt(float64(w*h))
	azimuth := cfg.SunAzimuthDeg * math.Pi / 180
	elevation := cfg.SunElevationDeg * math.Pi / 180

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		}
		if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		return hm.Values[y*w+x]
	}

	hMax := hm.HMax
	if hMax <= 0 {
		hMax = 1
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			left := at(x-1, y)
			right := at(x+1, y)
			top := at(x, y-1)
			bottom := at(x, y+1)
			dx := left - right
			dy := top - bottom

			slope := math.Atan(z * math.Hypot(dx, dy))
			aspect := math.Atan2(-dy, -dx)
			l := math.Cos(math.Pi-aspect-azimuth)*math.Sin(slope)*math.Sin(math.Pi/2-elevation) +
				math.Cos(slope)*math.Cos(math.Pi/2-elevation)

			i := y*w + x
			out.L[i] = l
			out.HeightRatio[i] = at(x, y) / hMax
		}
	}
	return out
}

func (hf *hillshadeField) sampleL(xFull, yFull float64) float64 {
	return bilinearSampleGrid(hf.L, hf.W, hf.H, hf.FullW, hf.FullH, xFull, yFull)
}

func (hf *hillshadeField) sampleHeightRatio(xFull, yFull float64) float64 {
	return bilinearSampleGrid(hf.HeightRatio, hf.W, hf.H, hf.FullW, hf.FullH, xFull, yFull)
}
