package raster

import "math"

// reducedResolution scales (fullW, fullH) down proportionally so the total
// pixel count is at most maxPx, returning the reduced dimensions (at least
// 1x1) and the linear reduction ratio applied to each axis.
func reducedResolution(fullW, fullH int, maxPx float64) (w, h int, ratio float64) {
	total := float64(fullW) * float64(fullH)
	if total <= maxPx || total <= 0 {
		return fullW, fullH, 1
	}
	ratio = math.Sqrt(maxPx / total)
	w = maxInt(1, int(float64(fullW)*ratio))
	h = maxInt(1, int(float64(fullH)*ratio))
	return w, h, ratio
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// VoronoiField records, for each reduced-resolution pixel, the owning
// node's vid (0 = none) and a normalized distance in [0,255].
type VoronoiField struct {
	W, H     int
	FullW, FullH int
	Owner    []uint32
	Dist     []uint8
}

func newVoronoiField(w, h, fullW, fullH int) *VoronoiField {
	return &VoronoiField{
		W: w, H: h, FullW: fullW, FullH: fullH,
		Owner: make([]uint32, w*h),
		Dist:  make([]uint8, w*h),
	}
}

func (v *VoronoiField) idx(x, y int) int { return y*v.W + x }

// SampleNearest looks up the owner/distance at a full-resolution point using
// nearest-neighbor unpacking, per spec.md §4.4.
func (v *VoronoiField) SampleNearest(xFull, yFull float64) (owner uint32, dist uint8) {
	if v.W == 0 || v.H == 0 {
		return 0, 0
	}
	x := int(xFull * float64(v.W) / float64(v.FullW))
	y := int(yFull * float64(v.H) / float64(v.FullH))
	if x < 0 {
		x = 0
	}
	if x >= v.W {
		x = v.W - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= v.H {
		y = v.H - 1
	}
	i := v.idx(x, y)
	return v.Owner[i], v.Dist[i]
}

// HeatmapField is an additive density field at reduced resolution, plus the
// separately-recorded maximum value (hMax), per spec.md §4.4.
type HeatmapField struct {
	W, H         int
	FullW, FullH int
	Values       []float64
	HMax         float64
}

func newHeatmapField(w, h, fullW, fullH int) *HeatmapField {
	return &HeatmapField{W: w, H: h, FullW: fullW, FullH: fullH, Values: make([]float64, w*h)}
}

func (h *HeatmapField) idx(x, y int) int { return y*h.W + x }

func (h *HeatmapField) at(x, y int) float64 {
	if x < 0 || x >= h.W || y < 0 || y >= h.H {
		return 0
	}
	return h.Values[h.idx(x, y)]
}

// SampleBilinear unpacks the reduced-resolution field to a full-resolution
// point via bilinear interpolation, per spec.md §4.4.
func (h *HeatmapField) SampleBilinear(xFull, yFull float64) float64 {
	return bilinearSampleGrid(h.Values, h.W, h.H, h.FullW, h.FullH, xFull, yFull)
}

// bilinearSampleGrid unpacks a reduced-resolution scalar grid to a
// full-resolution point via bilinear interpolation.
func bilinearSampleGrid(values []float64, w, h, fullW, fullH int, xFull, yFull float64) float64 {
	if w == 0 || h == 0 {
		return 0
	}
	at := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return values[y*w+x]
	}
	fx := xFull * float64(w) / float64(fullW)
	fy := yFull * float64(h) / float64(fullH)
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := at(x0, y0)
	v10 := at(x0+1, y0)
	v01 := at(x0, y0+1)
	v11 := at(x0+1, y0+1)

	top := v00*(1-tx) + v10*tx
	bottom := v01*(1-tx) + v11*tx
	return top*(1-ty) + bottom*ty
}
