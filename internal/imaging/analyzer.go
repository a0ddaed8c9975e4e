package imaging

import (
	"math"

	"github.com/forgesite/forgesite/internal/logger"
)

// Bounds detection methods recorded on an analysis so the fallback chain
// stays observable.
const (
	MethodTrim           = "trim"
	MethodEdgeDetect     = "edge-detect"
	MethodCenterFallback = "center-fallback"
	MethodSampled        = "sampled"
	MethodEstimate       = "estimate"
	MethodHistogram      = "histogram"
	MethodFallback       = "fallback"
)

// Crop decision sources.
const (
	SourceCustomOverride      = "custom-override"
	SourceIntelligentAnalysis = "intelligent-analysis"
	SourceAdaptiveHeuristic   = "adaptive-heuristic"
)

// WhitespaceAnalysis is the estimated whitespace percentage per edge.
type WhitespaceAnalysis struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// ContentDensity scores how busy the image content is.
type ContentDensity struct {
	Density    float64
	Complexity string // low, medium or high
}

// ContentAnalysis is the ephemeral result of analyzing one image. Method
// fields record which step of each fallback chain produced the value.
type ContentAnalysis struct {
	Dimensions       Dimensions
	ContentBounds    Bounds
	BoundsMethod     string
	Whitespace       WhitespaceAnalysis
	WhitespaceMethod string
	Density          ContentDensity
	DensityMethod    string
	Confidence       int
}

// CropDecision is the per-asset outcome of the processor. Logged, never
// persisted.
type CropDecision struct {
	Crop       Rect
	Source     string
	Confidence int
	Skip       bool
	Reason     string
}

// Analyzer derives content bounds, whitespace and density estimates for a
// raster image. Every step is independently fallible with a documented
// fallback; only a failure to identify the image at all is fatal.
type Analyzer struct {
	raster Raster
	log    *logger.Logger
}

// NewAnalyzer constructs an Analyzer over the given raster capability.
func NewAnalyzer(raster Raster, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{raster: raster, log: log}
}

// Fractional sampling coordinates: three along the top edge, three along
// the bottom, one mid-left, one mid-right.
var samplePoints = []struct {
	fx, fy float64
	edge   string
}{
	{0.2, 0.04, "top"}, {0.5, 0.04, "top"}, {0.8, 0.04, "top"},
	{0.2, 0.96, "bottom"}, {0.5, 0.96, "bottom"}, {0.8, 0.96, "bottom"},
	{0.04, 0.5, "left"},
	{0.96, 0.5, "right"},
}

const (
	trimFuzz      = 0.08
	edgeThreshold = 0.12

	baseConfidence        = 70
	boundsBonus           = 20
	whitespaceBonus       = 10
	densityBonus          = 10
	centerFallbackMalus   = 30
	estimateFallbackMalus = 20
	minConfidence         = 30
	maxConfidence         = 100
)

// Analyze runs the full analysis chain against the image at path.
func (a *Analyzer) Analyze(path string) (*ContentAnalysis, error) {
	dims, err := a.raster.Identify(path)
	if err != nil {
		return nil, err
	}

	analysis := &ContentAnalysis{Dimensions: dims}
	a.detectBounds(path, dims, analysis)
	a.sampleWhitespace(path, analysis)
	a.measureDensity(path, analysis)

	confidence := baseConfidence
	if analysis.BoundsMethod == MethodCenterFallback {
		confidence -= centerFallbackMalus
	} else {
		confidence += boundsBonus
	}
	if analysis.WhitespaceMethod == MethodSampled {
		confidence += whitespaceBonus
	} else {
		confidence -= estimateFallbackMalus
	}
	if analysis.DensityMethod == MethodHistogram {
		confidence += densityBonus
	}
	analysis.Confidence = clampInt(confidence, minConfidence, maxConfidence)

	return analysis, nil
}

// detectBounds tries auto-trim, then edge detection, then the centered-80%
// fallback. Bounds are plausible only when positive and within the image.
func (a *Analyzer) detectBounds(path string, dims Dimensions, analysis *ContentAnalysis) {
	if bounds, err := a.raster.Trim(path, trimFuzz); err == nil && plausibleBounds(bounds, dims) {
		analysis.ContentBounds = bounds
		analysis.BoundsMethod = MethodTrim
		return
	}

	if bounds, err := a.raster.EdgeBounds(path, edgeThreshold); err == nil && plausibleBounds(bounds, dims) {
		analysis.ContentBounds = bounds
		analysis.BoundsMethod = MethodEdgeDetect
		return
	}

	a.log.WithFields(map[string]any{"image": path}).Debug("content bounds detection failed, assuming centered 80%")
	analysis.ContentBounds = Bounds{
		Left:   dims.Width / 10,
		Top:    dims.Height / 10,
		Right:  dims.Width - dims.Width/10,
		Bottom: dims.Height - dims.Height/10,
	}
	analysis.BoundsMethod = MethodCenterFallback
}

func plausibleBounds(b Bounds, dims Dimensions) bool {
	return b.Width() > 0 && b.Height() > 0 &&
		b.Width() <= dims.Width && b.Height() <= dims.Height &&
		b.Left >= 0 && b.Top >= 0
}

// sampleWhitespace classifies eight fixed edge samples as whitespace when
// near-white or substantially transparent, then aggregates per edge.
func (a *Analyzer) sampleWhitespace(path string, analysis *ContentAnalysis) {
	counts := map[string]int{}
	totals := map[string]int{}

	for _, pt := range samplePoints {
		px, err := a.raster.PixelAt(path, pt.fx, pt.fy)
		if err != nil {
			analysis.Whitespace = WhitespaceAnalysis{Top: 20, Bottom: 20, Left: 10, Right: 10}
			analysis.WhitespaceMethod = MethodEstimate
			return
		}

		totals[pt.edge]++
		nearWhite := px.R > 240 && px.G > 240 && px.B > 240
		transparent := float64(px.A)/255 < 0.1
		if nearWhite || transparent {
			counts[pt.edge]++
		}
	}

	percent := func(edge string) float64 {
		if totals[edge] == 0 {
			return 0
		}
		return float64(counts[edge]) / float64(totals[edge]) * 100
	}

	analysis.Whitespace = WhitespaceAnalysis{
		Top:    percent("top"),
		Bottom: percent("bottom"),
		Left:   percent("left"),
		Right:  percent("right"),
	}
	analysis.WhitespaceMethod = MethodSampled
}

// measureDensity folds luminance statistics into a 0-100 density score.
func (a *Analyzer) measureDensity(path string, analysis *ContentAnalysis) {
	mean, stddev, err := a.raster.MeanStdDev(path)
	if err != nil {
		analysis.Density = ContentDensity{Density: 50, Complexity: "medium"}
		analysis.DensityMethod = MethodFallback
		return
	}

	density := clampFloat(stddev*100+mean*50, 0, 100)
	complexity := "low"
	switch {
	case density > 60:
		complexity = "high"
	case density > 30:
		complexity = "medium"
	}

	analysis.Density = ContentDensity{Density: density, Complexity: complexity}
	analysis.DensityMethod = MethodHistogram
}

// Crop synthesis tuning. The buffers trade clipping risk against leftover
// margin; see RecommendCrop.
const (
	bufferBase           = 3.0
	bufferHighWhitespace = 1.0
	bufferNoWhitespace   = 6.0
	bufferComplexBonus   = 2.0

	minCropWidth    = 30.0
	maxCropWidth    = 98.0
	minCropHeight   = 20.0
	maxCropHeight   = 98.0
	floorCropHeight = 25.0

	horizontalBias = 1.5
)

// RecommendCrop converts a content analysis into a percentage crop
// rectangle biased toward horizontal framing.
func (a *Analyzer) RecommendCrop(analysis *ContentAnalysis) CropDecision {
	dims := analysis.Dimensions
	w := float64(dims.Width)
	h := float64(dims.Height)
	if w == 0 || h == 0 {
		return CropDecision{Skip: true, Source: SourceIntelligentAnalysis, Reason: "degenerate image dimensions"}
	}

	left := float64(analysis.ContentBounds.Left) / w * 100
	top := float64(analysis.ContentBounds.Top) / h * 100
	right := float64(dims.Width-analysis.ContentBounds.Right) / w * 100
	bottom := float64(dims.Height-analysis.ContentBounds.Bottom) / h * 100

	complex := analysis.Density.Complexity == "high"
	left = math.Max(0, left-smartBuffer(analysis.Whitespace.Left, complex))
	right = math.Max(0, right-smartBuffer(analysis.Whitespace.Right, complex))
	top = math.Max(0, top-smartBuffer(analysis.Whitespace.Top, complex))
	bottom = math.Max(0, bottom-smartBuffer(analysis.Whitespace.Bottom, complex))

	cropW := clampFloat(100-left-right, minCropWidth, maxCropWidth)
	cropH := clampFloat(100-top-bottom, minCropHeight, maxCropHeight)
	x := math.Min(left, 100-cropW)
	y := math.Min(top, 100-cropH)

	// Logos are assumed landscape-oriented; squeeze the height until the
	// resulting pixel aspect ratio reaches the bias, bounded below.
	pxW := cropW / 100 * w
	pxH := cropH / 100 * h
	if pxH > 0 && pxW/pxH < horizontalBias {
		wanted := (pxW / horizontalBias) / h * 100
		newH := math.Max(floorCropHeight, wanted)
		if newH < cropH {
			y = math.Min(100-newH, y+(cropH-newH)/2)
			cropH = newH
		}
	}

	return CropDecision{
		Crop:       Rect{W: round1(cropW), H: round1(cropH), X: round1(x), Y: round1(y)},
		Source:     SourceIntelligentAnalysis,
		Confidence: analysis.Confidence,
	}
}

// smartBuffer shrinks when an edge is mostly whitespace (safe to cut close)
// and grows when no whitespace was seen at all or the content is complex
// (risk of clipping real content).
func smartBuffer(whitespace float64, complex bool) float64 {
	buffer := bufferBase
	if whitespace > 80 {
		buffer = bufferHighWhitespace
	} else if whitespace == 0 {
		buffer = bufferNoWhitespace
	}
	if complex {
		buffer += bufferComplexBonus
	}
	return buffer
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
