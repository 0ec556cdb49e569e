package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fontWeightPx maps the nine CSS-style font-weight buckets spec.md §4.4
// names to a stroke thickness in pixels, used to decide how many times a
// label's glyphs are re-blitted with a 1px offset to fake a bolder weight
// (basicfont.Face7x13 has no weight axis of its own).
var fontWeightPx = map[int]float64{
	100: 2, 200: 3.5, 300: 5, 400: 7,
	500: 9.5, 600: 12, 700: 15, 800: 18, 900: 21,
}

// labelCandidate is a node eligible for a label, scored for placement
// priority by size (spec.md §4.4: larger nodes label first).
type labelCandidate struct {
	node     renderNode
	fontPt   float64
	boldReps int
}

// fontSizeFor interpolates a node's label font size linearly between
// LabelMinFontPt/LabelMaxFontPt over the LabelMinNodeSize/LabelMaxNodeSize
// range, clamped at both ends.
func fontSizeFor(size float64, cfg Config) float64 {
	lo, hi := cfg.LabelMinNodeSize, cfg.LabelMaxNodeSize
	if hi <= lo {
		return cfg.LabelMaxFontPt
	}
	t := (size - lo) / (hi - lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return cfg.LabelMinFontPt + t*(cfg.LabelMaxFontPt-cfg.LabelMinFontPt)
}

// boldRepsFor quantizes a font size into one of the nine weight buckets and
// returns how many 1px-offset redraw passes approximate that weight.
func boldRepsFor(fontPt float64, cfg Config) int {
	span := cfg.LabelMaxFontPt - cfg.LabelMinFontPt
	if span <= 0 {
		return 1
	}
	t := (fontPt - cfg.LabelMinFontPt) / span
	bucket := 100 + int(math.Round(t*8))*100
	px := fontWeightPx[bucket]
	if px == 0 {
		px = fontWeightPx[400]
	}
	return maxInt(1, int(math.Round(px/7)))
}

// sortLabelCandidates orders label candidates size desc, then X asc, the
// same tie-break sortNodesForDrawing uses, so the kept-label set after
// collision testing is a function of node size order and the collision
// bitmap alone: reordering equal-size input nodes must not change it.
func sortLabelCandidates(candidates []labelCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].node.Size != candidates[j].node.Size {
			return candidates[i].node.Size > candidates[j].node.Size
		}
		return candidates[i].node.X < candidates[j].node.X
	})
}

// drawLabels runs the greedy collision-bitmap placement pass from spec.md
// §4.4: nodes sorted largest-first, each measured at its interpolated font
// size, placed if its bounding box (plus LabelMarginPx) doesn't collide with
// an already-placed label, up to LabelCount placements. It returns the number
// of labels drawn.
func drawLabels(dst *image.RGBA, nodes []renderNode, cfg Config) int {
	if cfg.LabelCount <= 0 {
		return 0
	}
	candidates := make([]labelCandidate, 0, len(nodes))
	for _, n := range nodes {
		if n.Label == "" {
			continue
		}
		fontPt := fontSizeFor(n.Size, cfg)
		candidates = append(candidates, labelCandidate{
			node:     n,
			fontPt:   fontPt,
			boldReps: boldRepsFor(fontPt, cfg),
		})
	}
	sortLabelCandidates(candidates)

	b := dst.Bounds()
	resW, resH, ratio := reducedResolution(b.Dx(), b.Dy(), cfg.LabelCollisionPixmapMaxResolution)
	occupied := make([]bool, resW*resH)
	occ := func(x, y int) bool {
		if x < 0 || x >= resW || y < 0 || y >= resH {
			return true
		}
		return occupied[y*resW+x]
	}
	occupy := func(x0, y0, x1, y1 int) {
		for y := maxInt(0, y0); y <= minInt(resH-1, y1); y++ {
			for x := maxInt(0, x0); x <= minInt(resW-1, x1); x++ {
				occupied[y*resW+x] = true
			}
		}
	}
	collides := func(x0, y0, x1, y1 int) bool {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if occ(x, y) {
					return true
				}
			}
		}
		return false
	}

	placed := 0
	face := basicfont.Face7x13

	for _, c := range candidates {
		if placed >= cfg.LabelCount {
			break
		}
		// Every measurement below is in full render-resolution pixels;
		// only the collision-grid bounds are scaled down by ratio.
		scale := c.fontPt / 13 // basicfont.Face7x13 is ~13pt high
		widthFull := float64(font.MeasureString(face, c.node.Label)) / 64 * scale
		heightFull := 13 * scale
		leftFull := c.node.X - widthFull/2
		topFull := c.node.Y + c.node.Size + cfg.LabelMarginPx

		x0 := int(math.Floor((leftFull - cfg.LabelMarginPx) * ratio))
		x1 := int(math.Ceil((leftFull + widthFull + cfg.LabelMarginPx) * ratio))
		y0 := int(math.Floor((topFull - cfg.LabelMarginPx) * ratio))
		y1 := int(math.Ceil((topFull + heightFull + cfg.LabelMarginPx) * ratio))

		if collides(x0, y0, x1, y1) {
			continue
		}
		occupy(x0, y0, x1, y1)
		placed++

		col := defaultLabelColor(c.node)
		drawLabelText(dst, c.node.Label, leftFull, topFull, c.fontPt, c.boldReps, col)
	}
	return placed
}

func defaultLabelColor(n renderNode) color.RGBA {
	base := n.Color
	if !n.HasColor {
		base = defaultNodeColor
	}
	return clampLabelColor(base)
}

// drawLabelText blits text at (x, yTop) in full-resolution pixels using
// basicfont.Face7x13 scaled to fontPt, redrawing boldReps times with a 1px
// horizontal offset to fake weight.
func drawLabelText(dst *image.RGBA, text string, x, yTop, fontPt float64, boldReps int, col color.RGBA) {
	scale := fontPt / 13
	face := basicfont.Face7x13
	baseline := yTop + 10*scale

	for rep := 0; rep < boldReps; rep++ {
		ox := float64(rep)
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(int(x+ox), int(baseline)),
		}
		if scale == 1 {
			d.DrawString(text)
			continue
		}
		// render to a small buffer then nearest-scale into dst, since
		// basicfont has a single fixed size
		w := font.MeasureString(face, text).Ceil() + 2
		tmp := image.NewRGBA(image.Rect(0, 0, w, 13))
		draw.Draw(tmp, tmp.Bounds(), image.Transparent, image.Point{}, draw.Src)
		td := &font.Drawer{Dst: tmp, Src: image.NewUniform(col), Face: face, Dot: fixed.P(0, 10)}
		td.DrawString(text)

		dw := int(float64(w) * scale)
		dh := int(13 * scale)
		if dw <= 0 || dh <= 0 {
			continue
		}
		for py := 0; py < dh; py++ {
			sy := py * 13 / dh
			for px := 0; px < dw; px++ {
				sx := px * w / dw
				c := tmp.RGBAAt(sx, sy)
				if c.A == 0 {
					continue
				}
				blendPixel(dst, int(x+ox)+px, int(yTop)+py, col, float64(c.A)/255)
			}
		}
	}
}
