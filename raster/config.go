// Package raster turns one laid-out snapshot (a *graphmodel.Graph borrowed
// read-only) into an RGBA frame: a Voronoi distance field used to attenuate
// edges crossing unrelated nodes, an additive heatmap field with optional
// hillshading for a topographic density background, edge/node drawing, a
// greedy label-placement pass using a collision bitmap, and final layer
// compositing.
package raster

import "image/color"

// Config holds every rasterizer tunable from spec.md §4.4.
type Config struct {
	WidthMM, HeightMM       float64
	MarginTopMM             float64
	MarginRightMM           float64
	MarginBottomMM          float64
	MarginLeftMM            float64
	RenderingDPI            float64
	OutputDPI               float64

	FlipX, FlipY bool
	RotateDeg    float64

	UseBarycenterRatio float64 // default 0.2
	FitMode            FitMode

	VoronoiRangePx        float64
	VoronoiResolutionMax  float64 // px, default 1e8

	HeatmapSpreadMM      float64
	HeatmapResolutionMax float64 // px, default 1e5
	HeatmapSizeRatio     float64 // "ratio" multiplying node size in the heatmap falloff
	Hillshade            bool
	HillshadeStrength    float64
	SunAzimuthDeg        float64
	SunElevationDeg      float64
	HypsometricGradient  bool

	EdgeQuality       EdgeQuality
	EdgeCurved        bool
	EdgeJitterMM      float64

	NodeSizeMultiplier float64
	StrokeWidthMM      float64
	StrokeColor        color.RGBA
	HasStroke          bool

	LabelCount                       int
	LabelMinFontPt, LabelMaxFontPt   float64
	LabelMinNodeSize, LabelMaxNodeSize float64
	LabelCollisionPixmapMaxResolution float64 // px, default 1e7
	LabelMarginPx                     float64
	LabelIncludeNodeCircle            bool

	BackgroundColor color.RGBA
}

type FitMode int

const (
	FitBoundingBox FitMode = iota
	FitInscribedCircle
)

type EdgeQuality int

const (
	EdgeQualityHigh EdgeQuality = iota
	EdgeQualityFast
)

// DefaultConfig matches spec.md §4.4's stated defaults.
func DefaultConfig() Config {
	return Config{
		WidthMM: 300, HeightMM: 300,
		MarginTopMM: 10, MarginRightMM: 10, MarginBottomMM: 10, MarginLeftMM: 10,
		RenderingDPI: 96, OutputDPI: 96,

		UseBarycenterRatio: 0.2,
		FitMode:            FitBoundingBox,

		VoronoiRangePx:       40,
		VoronoiResolutionMax: 1e8,

		HeatmapSpreadMM:      5,
		HeatmapResolutionMax: 1e5,
		HeatmapSizeRatio:     1,
		Hillshade:            false,
		HillshadeStrength:    3,
		SunAzimuthDeg:        315,
		SunElevationDeg:      45,

		EdgeQuality:  EdgeQualityFast,
		EdgeJitterMM: 0.05,

		NodeSizeMultiplier: 1,
		StrokeWidthMM:      0.1,

		LabelCount:                        200,
		LabelMinFontPt:                    4,
		LabelMaxFontPt:                    18,
		LabelMinNodeSize:                  1,
		LabelMaxNodeSize:                  50,
		LabelCollisionPixmapMaxResolution: 1e7,
		LabelMarginPx:                     2,
		LabelIncludeNodeCircle:            true,

		BackgroundColor: color.RGBA{R: 245, G: 245, B: 245, A: 255},
	}
}
