package raster

import (
	"image/color"
	"math"
)

var defaultNodeColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}

// rgbToHCL converts sRGB (0-255 channels) to a CIE-LCh-like hue/chroma/
// luminance triple via CIELAB. This is a hand-rolled, deliberately small
// implementation (no color-science library appears anywhere in the example
// corpus) used only to clamp label fill colors per spec.md §4.4.
func rgbToHCL(c color.RGBA) (h, chroma, l float64) {
	r := srgbToLinear(float64(c.R) / 255)
	g := srgbToLinear(float64(c.G) / 255)
	b := srgbToLinear(float64(c.B) / 255)

	// sRGB -> XYZ (D65)
	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	const xn, yn, zn = 0.95047, 1.0, 1.08883
	fx := labF(x / xn)
	fy := labF(y / yn)
	fz := labF(z / zn)

	l = 116*fy - 16
	a := 500 * (fx - fy)
	bLab := 200 * (fy - fz)

	chroma = math.Hypot(a, bLab)
	h = math.Atan2(bLab, a)
	return
}

func hclToRGB(h, chroma, l float64) color.RGBA {
	a := chroma * math.Cos(h)
	b := chroma * math.Sin(h)

	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	const xn, yn, zn = 0.95047, 1.0, 1.08883
	x := xn * labFInv(fx)
	y := yn * labFInv(fy)
	z := zn * labFInv(fz)

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return color.RGBA{
		R: clampChannel(linearToSRGB(r)),
		G: clampChannel(linearToSRGB(g)),
		B: clampChannel(linearToSRGB(bl)),
		A: 255,
	}
}

// clampLabelColor constrains a node color to the chroma/lightness band
// spec.md §4.4 requires for label fill: chroma in [0,70], lightness in
// [2,50].
func clampLabelColor(base color.RGBA) color.RGBA {
	h, chroma, l := rgbToHCL(base)
	if chroma < 0 {
		chroma = 0
	} else if chroma > 70 {
		chroma = 70
	}
	if l < 2 {
		l = 2
	} else if l > 50 {
		l = 50
	}
	return hclToRGB(h, chroma, l)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0 {
		return 0
	}
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func clampChannel(v float64) uint8 {
	v = v * 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// hillshadeGradient maps a Lambertian reflectance value to an alpha per
// spec.md §4.4: max(0, 0.2+0.8*min(1, 1.4*L))^0.6.
func hillshadeGradient(l float64) float64 {
	v := 0.2 + 0.8*math.Min(1, 1.4*l)
	if v < 0 {
		v = 0
	}
	return math.Pow(v, 0.6)
}

// hypsometricColor keys a color on a normalized [0,1] height ratio, running
// from a cool low tone to a warm high tone, the common hypsometric-tint
// convention.
func hypsometricColor(t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	stops := []color.RGBA{
		{R: 40, G: 80, B: 140, A: 255},
		{R: 60, G: 150, B: 120, A: 255},
		{R: 220, G: 200, B: 90, A: 255},
		{R: 200, G: 90, B: 60, A: 255},
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	frac := pos - float64(i)
	a, b := stops[i], stops[i+1]
	return color.RGBA{
		R: lerpU8(a.R, b.R, frac),
		G: lerpU8(a.G, b.G, frac),
		B: lerpU8(a.B, b.B, frac),
		A: 255,
	}
}

func lerpU8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
