package imaging

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgesite/forgesite/internal/logger"
)

// AssetKind classifies a site asset by filename.
type AssetKind string

const (
	KindLogoNavbar  AssetKind = "logo-navbar"
	KindLogoFooter  AssetKind = "logo-footer"
	KindLogoDefault AssetKind = "logo"
	KindFavicon     AssetKind = "favicon"
	KindOther       AssetKind = "other"
)

// ClassifyAsset maps an asset filename to its processing role. Light and
// dark variant names count toward navbar and footer respectively.
func ClassifyAsset(name string) AssetKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "favicon"):
		return KindFavicon
	case !strings.Contains(lower, "logo"):
		return KindOther
	case strings.Contains(lower, "navbar"), strings.Contains(lower, "nav"), strings.Contains(lower, "clair"):
		return KindLogoNavbar
	case strings.Contains(lower, "footer"), strings.Contains(lower, "sombre"), strings.Contains(lower, "dark"):
		return KindLogoFooter
	default:
		return KindLogoDefault
	}
}

// Thresholds collects the tuning knobs of the processor in one place.
type Thresholds struct {
	// Minimum analysis confidence before an intelligent crop is trusted.
	IntelligentMinConfidence int

	// Adaptive heuristic aspect cut-offs.
	WideAspect   float64 // beyond this a logo is already very wide
	SquareAspect float64 // below this a logo is left untouched
	LargeWidth   int     // either dimension beyond these gets a
	LargeHeight  int     // conservative crop

	// Compact well-dimensioned logo skip.
	CompactAspectMin float64
	CompactAspectMax float64
	CompactMaxWidth  int
	CompactMaxHeight int

	// Well-composed skip based on content analysis.
	ContentWidthShare float64 // content width as a share of image width
	ComposedAspectMin float64
	ComposedAspectMax float64
	SideWhitespaceMax float64 // percent per side
	SideAspectMin     float64

	// Favicon well-sized skip.
	FaviconSizes     []int
	FaviconMinSquare int
	FaviconMaxSquare int
	FaviconTarget    int

	// Post-crop quality gate (log only, never blocks).
	QualityMaxWidthLoss        float64
	QualityMinSquareHeightLoss float64
	QualityMinAspect           float64
	QualityMinHeight           int

	// Logos wider than this are scaled down after cropping.
	ResizeMaxWidth int
}

// DefaultThresholds returns the production tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IntelligentMinConfidence: 70,

		WideAspect:   4,
		SquareAspect: 1.5,
		LargeWidth:   800,
		LargeHeight:  600,

		CompactAspectMin: 1.8,
		CompactAspectMax: 8,
		CompactMaxWidth:  800,
		CompactMaxHeight: 200,

		ContentWidthShare: 0.85,
		ComposedAspectMin: 2.5,
		ComposedAspectMax: 6,
		SideWhitespaceMax: 20,
		SideAspectMin:     2.2,

		FaviconSizes:     []int{16, 32, 48, 64, 96, 128, 152, 192, 256, 512},
		FaviconMinSquare: 16,
		FaviconMaxSquare: 1024,
		FaviconTarget:    512,

		QualityMaxWidthLoss:        0.15,
		QualityMinSquareHeightLoss: 0.60,
		QualityMinAspect:           1.3,
		QualityMinHeight:           60,

		ResizeMaxWidth: 800,
	}
}

// AssetReport records what happened to one asset file.
type AssetReport struct {
	File     string
	Kind     AssetKind
	Decision CropDecision
	Applied  bool
	Issues   []string
}

// ProcessorOptions configures a Processor beyond its capabilities.
type ProcessorOptions struct {
	// PreOptimizedSites lists site IDs whose assets are hand-tuned and
	// must never be touched.
	PreOptimizedSites []string

	// Thresholds overrides the default tuning when non-nil.
	Thresholds *Thresholds
}

// Processor normalizes logo and favicon assets in place. A nil raster
// degrades every asset to an untouched pass-through instead of failing.
type Processor struct {
	raster       Raster
	analyzer     *Analyzer
	log          *logger.Logger
	thresholds   Thresholds
	preOptimized map[string]bool
	available    bool
}

// NewProcessor constructs a Processor over the given raster capability.
func NewProcessor(raster Raster, log *logger.Logger, opts ProcessorOptions) *Processor {
	if log == nil {
		log = logger.Nop()
	}

	available := raster != nil
	if !available {
		raster = NoopRaster{}
		log.Warn("no raster capability configured, assets will be left untouched")
	}

	thresholds := DefaultThresholds()
	if opts.Thresholds != nil {
		thresholds = *opts.Thresholds
	}

	preOptimized := make(map[string]bool, len(opts.PreOptimizedSites))
	for _, id := range opts.PreOptimizedSites {
		preOptimized[id] = true
	}

	return &Processor{
		raster:       raster,
		analyzer:     NewAnalyzer(raster, log),
		log:          log,
		thresholds:   thresholds,
		preOptimized: preOptimized,
		available:    available,
	}
}

// ProcessSiteAssets walks assetsDir and processes every logo and favicon
// file in place. A failure on one asset never aborts the others.
func (p *Processor) ProcessSiteAssets(assetsDir, siteID string) ([]AssetReport, error) {
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("read assets directory: %w", err)
	}

	var reports []AssetReport
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == SidecarName {
			continue
		}
		kind := ClassifyAsset(entry.Name())
		if kind == KindOther {
			continue
		}

		report := p.ProcessAsset(filepath.Join(assetsDir, entry.Name()), siteID)
		p.log.WithFields(map[string]any{
			"site":       siteID,
			"file":       report.File,
			"kind":       string(report.Kind),
			"source":     report.Decision.Source,
			"confidence": report.Decision.Confidence,
			"skip":       report.Decision.Skip,
			"reason":     report.Decision.Reason,
			"applied":    report.Applied,
		}).Info("asset processed")
		reports = append(reports, report)
	}
	return reports, nil
}

// ProcessAsset decides on and applies a normalization for a single asset.
// Decision precedence: pre-optimized site, sidecar override, intelligent
// analysis when confident enough, adaptive heuristic.
func (p *Processor) ProcessAsset(path, siteID string) AssetReport {
	report := AssetReport{File: filepath.Base(path), Kind: ClassifyAsset(filepath.Base(path))}

	if !p.available {
		report.Decision = CropDecision{Skip: true, Reason: "raster capability unavailable"}
		return report
	}
	if p.preOptimized[siteID] {
		report.Decision = CropDecision{Skip: true, Reason: "site assets are pre-optimized"}
		return report
	}

	dims, err := p.raster.Identify(path)
	if err != nil {
		report.Decision = CropDecision{Skip: true, Reason: "unreadable image"}
		report.Issues = append(report.Issues, err.Error())
		p.log.Error(err, "asset could not be identified, leaving it untouched")
		return report
	}

	rect, version, found, err := loadSidecarCrop(filepath.Dir(path))
	if err != nil {
		report.Issues = append(report.Issues, err.Error())
		p.log.Error(err, "crop sidecar unusable, continuing without it")
	}
	if found && report.Kind != KindFavicon {
		report.Decision = CropDecision{
			Crop:       rect,
			Source:     SourceCustomOverride,
			Confidence: 100,
			Reason:     fmt.Sprintf("sidecar crop %s", version),
		}
		p.apply(path, dims, &report)
		return report
	}

	if report.Kind == KindFavicon {
		report.Decision = p.decideFavicon(dims)
	} else {
		report.Decision = p.decideLogo(path, dims, report.Kind)
	}

	if !report.Decision.Skip {
		p.apply(path, dims, &report)
	}
	return report
}

func (p *Processor) decideFavicon(dims Dimensions) CropDecision {
	if p.wellSizedFavicon(dims) {
		return CropDecision{
			Skip:   true,
			Reason: fmt.Sprintf("already optimal (%dx%d favicon)", dims.Width, dims.Height),
		}
	}

	// Center-crop to the largest inscribed square.
	side := dims.Width
	if dims.Height < side {
		side = dims.Height
	}
	w := float64(side) / float64(dims.Width) * 100
	h := float64(side) / float64(dims.Height) * 100
	return CropDecision{
		Crop:       Rect{W: round1(w), H: round1(h), X: round1((100 - w) / 2), Y: round1((100 - h) / 2)},
		Source:     SourceAdaptiveHeuristic,
		Confidence: 50,
		Reason:     "center square crop for favicon",
	}
}

func (p *Processor) decideLogo(path string, dims Dimensions, kind AssetKind) CropDecision {
	t := p.thresholds
	aspect := dims.AspectRatio()

	if aspect >= t.CompactAspectMin && aspect <= t.CompactAspectMax &&
		dims.Width <= t.CompactMaxWidth && dims.Height <= t.CompactMaxHeight {
		return CropDecision{
			Skip:   true,
			Reason: fmt.Sprintf("already optimal (compact %dx%d, aspect %.2f)", dims.Width, dims.Height, aspect),
		}
	}

	analysis, err := p.analyzer.Analyze(path)
	if err != nil {
		p.log.WithFields(map[string]any{"file": filepath.Base(path)}).Warn("content analysis failed, falling back to heuristic crop")
		return p.adaptiveCrop(dims, kind)
	}

	if reason, ok := p.wellComposed(analysis); ok {
		return CropDecision{Skip: true, Reason: reason}
	}

	if analysis.Confidence > t.IntelligentMinConfidence {
		decision := p.analyzer.RecommendCrop(analysis)
		if !decision.Skip {
			return decision
		}
	}

	return p.adaptiveCrop(dims, kind)
}

// wellComposed reports whether the analysis shows a logo that already
// fills its frame well enough that cropping would not improve it.
func (p *Processor) wellComposed(analysis *ContentAnalysis) (string, bool) {
	t := p.thresholds
	dims := analysis.Dimensions
	aspect := dims.AspectRatio()

	if dims.Width > 0 {
		share := float64(analysis.ContentBounds.Width()) / float64(dims.Width)
		if share > t.ContentWidthShare && aspect >= t.ComposedAspectMin && aspect <= t.ComposedAspectMax {
			return fmt.Sprintf("already optimal (content fills %.0f%% of width)", share*100), true
		}
	}

	if analysis.WhitespaceMethod == MethodSampled &&
		analysis.Whitespace.Left <= t.SideWhitespaceMax &&
		analysis.Whitespace.Right <= t.SideWhitespaceMax &&
		aspect >= t.SideAspectMin {
		return "already optimal (little side whitespace)", true
	}

	return "", false
}

// adaptiveCrop picks a fixed percentage rectangle from the image shape and
// the asset's role when no analysis is trustworthy.
func (p *Processor) adaptiveCrop(dims Dimensions, kind AssetKind) CropDecision {
	t := p.thresholds
	aspect := dims.AspectRatio()

	var rect Rect
	var reason string
	switch {
	case aspect > 0 && aspect < t.SquareAspect:
		return CropDecision{
			Skip:   true,
			Source: SourceAdaptiveHeuristic,
			Reason: fmt.Sprintf("near-square logo left untouched (aspect %.2f)", aspect),
		}
	case aspect > t.WideAspect:
		rect = Rect{W: 95, H: 80, X: 2.5, Y: 10}
		reason = "very wide logo, trimming edges only"
	case dims.Width > t.LargeWidth || dims.Height > t.LargeHeight:
		rect = Rect{W: 70, H: 60, X: 15, Y: 20}
		reason = "large source, conservative center crop"
	case kind == KindLogoFooter:
		rect = Rect{W: 85, H: 75, X: 7.5, Y: 12.5}
		reason = "footer logo crop"
	default:
		rect = Rect{W: 80, H: 70, X: 10, Y: 15}
		reason = "standard logo crop"
	}

	return CropDecision{
		Crop:       rect,
		Source:     SourceAdaptiveHeuristic,
		Confidence: 50,
		Reason:     reason,
	}
}

func (p *Processor) wellSizedFavicon(dims Dimensions) bool {
	t := p.thresholds
	for _, size := range t.FaviconSizes {
		if abs(dims.Width-size) <= 2 && abs(dims.Height-size) <= 2 {
			return true
		}
	}
	return dims.Width == dims.Height &&
		dims.Width >= t.FaviconMinSquare && dims.Width <= t.FaviconMaxSquare
}

// apply executes the crop through a temporary file so a failure leaves the
// original asset intact, then runs the quality gate and an optional
// downscale.
func (p *Processor) apply(path string, before Dimensions, report *AssetReport) {
	ext := filepath.Ext(path)
	tmp := strings.TrimSuffix(path, ext) + ".tmp" + ext

	if err := p.raster.Crop(path, tmp, report.Decision.Crop); err != nil {
		os.Remove(tmp)
		report.Issues = append(report.Issues, err.Error())
		p.log.Error(err, "crop failed, original asset kept")
		return
	}

	after, err := p.raster.Identify(tmp)
	if err == nil {
		report.Issues = append(report.Issues, p.qualityIssues(before, after, report.Kind)...)
		p.downscale(tmp, after, report)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		report.Issues = append(report.Issues, err.Error())
		p.log.Error(err, "could not replace asset, original kept")
		return
	}
	if inv, ok := p.raster.(interface{ Invalidate(string) }); ok {
		inv.Invalidate(path)
	}
	report.Applied = true
}

// downscale shrinks oversized results. Logos cap at ResizeMaxWidth wide,
// favicons at the target square size.
func (p *Processor) downscale(tmp string, dims Dimensions, report *AssetReport) {
	t := p.thresholds

	var w, h int
	switch {
	case report.Kind == KindFavicon && dims.Width > t.FaviconTarget:
		w, h = t.FaviconTarget, t.FaviconTarget
	case report.Kind != KindFavicon && dims.Width > t.ResizeMaxWidth:
		scale := float64(t.ResizeMaxWidth) / float64(dims.Width)
		w = t.ResizeMaxWidth
		h = int(math.Round(float64(dims.Height) * scale))
	default:
		return
	}

	if err := p.raster.Resize(tmp, tmp, w, h); err != nil {
		report.Issues = append(report.Issues, err.Error())
		p.log.Error(err, "downscale failed, keeping cropped size")
	}
}

// qualityIssues flags suspicious results. They are logged for tuning but
// never undo the crop.
func (p *Processor) qualityIssues(before, after Dimensions, kind AssetKind) []string {
	if kind == KindFavicon || before.Width == 0 || before.Height == 0 {
		return nil
	}

	t := p.thresholds
	var issues []string

	widthLoss := 1 - float64(after.Width)/float64(before.Width)
	if widthLoss > t.QualityMaxWidthLoss {
		issues = append(issues, fmt.Sprintf("width reduced by %.0f%%", widthLoss*100))
	}

	beforeAspect := before.AspectRatio()
	if beforeAspect >= 0.9 && beforeAspect <= 1.1 {
		heightLoss := 1 - float64(after.Height)/float64(before.Height)
		if heightLoss < t.QualityMinSquareHeightLoss {
			issues = append(issues, fmt.Sprintf("square source only lost %.0f%% height", heightLoss*100))
		}
	}

	if after.AspectRatio() < t.QualityMinAspect {
		issues = append(issues, fmt.Sprintf("result aspect %.2f still below %.1f", after.AspectRatio(), t.QualityMinAspect))
	}
	if after.Height < t.QualityMinHeight {
		issues = append(issues, fmt.Sprintf("result height %dpx below %dpx", after.Height, t.QualityMinHeight))
	}

	for _, issue := range issues {
		p.log.WithFields(map[string]any{"issue": issue}).Warn("crop quality concern")
	}
	return issues
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsUnavailable reports whether err stems from the missing raster tool.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrRasterUnavailable)
}
