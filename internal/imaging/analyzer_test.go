package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePNG renders a white canvas with an optional dark content rectangle.
func writePNG(t *testing.T, path string, w, h int, content image.Rectangle) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dark := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if image.Pt(x, y).In(content) {
				img.SetNRGBA(x, y, dark)
			} else {
				img.SetNRGBA(x, y, white)
			}
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// centeredContent returns a rectangle covering the middle share of a canvas.
func centeredContent(w, h int, share float64) image.Rectangle {
	mw := int(float64(w) * (1 - share) / 2)
	mh := int(float64(h) * (1 - share) / 2)
	return image.Rect(mw, mh, w-mw, h-mh)
}

func TestAnalyzeCenteredLogo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 1024, 1024, centeredContent(1024, 1024, 0.4))

	a := NewAnalyzer(NewGoRaster(), nil)
	analysis, err := a.Analyze(path)
	require.NoError(t, err)

	require.Equal(t, MethodTrim, analysis.BoundsMethod)
	require.Equal(t, MethodSampled, analysis.WhitespaceMethod)
	require.Equal(t, MethodHistogram, analysis.DensityMethod)
	require.Greater(t, analysis.Confidence, 70)

	// All eight edge samples land in the white margin.
	require.InDelta(t, 100, analysis.Whitespace.Top, 0.01)
	require.InDelta(t, 100, analysis.Whitespace.Left, 0.01)

	// Detected bounds hug the dark rectangle.
	require.InDelta(t, 1024*0.3, float64(analysis.ContentBounds.Left), 2)
	require.InDelta(t, 1024*0.7, float64(analysis.ContentBounds.Right), 2)
}

func TestAnalyzeUniformImageFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blank := filepath.Join(dir, "blank.png")
	writePNG(t, blank, 200, 200, image.Rectangle{})
	logo := filepath.Join(dir, "logo.png")
	writePNG(t, logo, 200, 200, centeredContent(200, 200, 0.4))

	a := NewAnalyzer(NewGoRaster(), nil)

	fallback, err := a.Analyze(blank)
	require.NoError(t, err)
	require.Equal(t, MethodCenterFallback, fallback.BoundsMethod)
	require.Equal(t, Bounds{Left: 20, Top: 20, Right: 180, Bottom: 180}, fallback.ContentBounds)

	detected, err := a.Analyze(logo)
	require.NoError(t, err)
	require.Greater(t, detected.Confidence, fallback.Confidence,
		"a successful detection must score above the forced fallback")
	require.GreaterOrEqual(t, fallback.Confidence, 30)
}

func TestRecommendCropHorizontalBias(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 1024, 1024, centeredContent(1024, 1024, 0.4))

	a := NewAnalyzer(NewGoRaster(), nil)
	analysis, err := a.Analyze(path)
	require.NoError(t, err)

	decision := a.RecommendCrop(analysis)
	require.False(t, decision.Skip)
	require.Equal(t, SourceIntelligentAnalysis, decision.Source)

	pxW := decision.Crop.W / 100 * 1024
	pxH := decision.Crop.H / 100 * 1024
	require.GreaterOrEqual(t, pxW/pxH, 1.3, "square sources should be squeezed toward landscape")
	require.GreaterOrEqual(t, decision.Crop.W, 30.0)
	require.GreaterOrEqual(t, decision.Crop.H, 20.0)
	require.LessOrEqual(t, decision.Crop.W, 98.0)
	require.LessOrEqual(t, decision.Crop.X+decision.Crop.W, 100.1)
	require.LessOrEqual(t, decision.Crop.Y+decision.Crop.H, 100.1)
}

func TestRectStringRoundTrip(t *testing.T) {
	t.Parallel()

	original := Rect{W: 82.5, H: 41, X: 8.75, Y: 29.5}
	parsed, err := ParseRect(original.String())
	require.NoError(t, err)
	require.Equal(t, original, parsed)

	_, err = ParseRect("80x70+10+15")
	require.Error(t, err)
	_, err = ParseRect("0%x70%+10%+15%")
	require.Error(t, err)
}

func TestNoopRasterFailsEverything(t *testing.T) {
	t.Parallel()

	var r Raster = NoopRaster{}
	_, err := r.Identify("whatever.png")
	require.ErrorIs(t, err, ErrRasterUnavailable)
	require.True(t, IsUnavailable(err))
}
