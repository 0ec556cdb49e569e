package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// composeBase fills the canvas with the background color, then if enabled
// paints the hillshaded/hypsometric heatmap layer using a "multiply" blend
// against the background, per spec.md §4.4.
func composeBase(w, h int, hm *HeatmapField, hs *hillshadeField, cfg Config) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(cfg.BackgroundColor), image.Point{}, draw.Src)

	if hm == nil {
		return dst
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := hm.SampleBilinear(float64(x), float64(y))
			if v <= 0 {
				continue
			}
			t := v / maxFloat(hm.HMax, 1e-9)

			var layer color.RGBA
			if cfg.HypsometricGradient {
				layer = hypsometricColor(t)
			} else {
				layer = color.RGBA{R: 20, G: 20, B: 20, A: 255}
			}

			alpha := hillshadeGradient(t)
			if cfg.Hillshade && hs != nil {
				l := hs.sampleL(float64(x), float64(y))
				alpha = hillshadeGradient(l) * hillshadeGradient(t)
			}
			if alpha <= 0 {
				continue
			}

			base := dst.RGBAAt(x, y)
			mult := color.RGBA{
				R: multiplyChannel(base.R, layer.R),
				G: multiplyChannel(base.G, layer.G),
				B: multiplyChannel(base.B, layer.B),
				A: 255,
			}
			blendPixel(dst, x, y, mult, alpha)
		}
	}
	return dst
}

func multiplyChannel(a, b uint8) uint8 {
	return uint8(int(a) * int(b) / 255)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
