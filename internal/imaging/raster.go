// Package imaging implements heuristic image content analysis and the
// logo/favicon normalization pipeline built on top of it.
package imaging

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrRasterUnavailable is returned by the no-op raster for every operation.
// The processor detects it once at construction time and degrades to
// copy-only behavior for its lifetime.
var ErrRasterUnavailable = errors.New("raster capability unavailable")

// Dimensions is an image size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// AspectRatio returns width over height, or 0 for a degenerate image.
func (d Dimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// Bounds is a detected content rectangle in pixel coordinates. Right and
// Bottom are exclusive.
type Bounds struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the bound's horizontal extent.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height returns the bound's vertical extent.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// Rect is a percentage-based crop rectangle relative to the source image,
// rendered in the W%xH%+X%+Y% convention.
type Rect struct {
	W float64
	H float64
	X float64
	Y float64
}

func (r Rect) String() string {
	return fmt.Sprintf("%g%%x%g%%+%g%%+%g%%", r.W, r.H, r.X, r.Y)
}

// ParseRect parses the W%xH%+X%+Y% form used by crop sidecar files.
func ParseRect(s string) (Rect, error) {
	var r Rect
	n, err := fmt.Sscanf(s, "%g%%x%g%%+%g%%+%g%%", &r.W, &r.H, &r.X, &r.Y)
	if err != nil || n != 4 {
		return Rect{}, fmt.Errorf("malformed crop rectangle %q", s)
	}
	if r.W <= 0 || r.H <= 0 {
		return Rect{}, fmt.Errorf("degenerate crop rectangle %q", s)
	}
	return r, nil
}

// Raster is the injected image-processing capability. Every operation the
// analyzer and processor need goes through this interface so that the
// degraded "tool unavailable" path is an implementation, not an exception.
type Raster interface {
	// Identify returns the pixel dimensions of the image at path.
	Identify(path string) (Dimensions, error)

	// Trim detects the content bounding box by stripping uniform
	// background. fuzz is the per-channel tolerance in [0,1].
	Trim(path string, fuzz float64) (Bounds, error)

	// EdgeBounds detects the content bounding box from luminance edges
	// above threshold (fraction of full scale).
	EdgeBounds(path string, threshold float64) (Bounds, error)

	// PixelAt samples the pixel at fractional coordinates (fx, fy) in [0,1].
	PixelAt(path string, fx, fy float64) (color.NRGBA, error)

	// MeanStdDev returns the normalized luminance mean and standard
	// deviation, both in [0,1].
	MeanStdDev(path string) (mean, stddev float64, err error)

	// Crop writes the sub-image described by the percentage rectangle.
	Crop(src, dst string, rect Rect) error

	// Resize scales the image to the given dimensions.
	Resize(src, dst string, width, height int) error
}

// NoopRaster is the capability used when no raster tool is available. All
// operations fail with ErrRasterUnavailable; callers degrade to plain
// copies.
type NoopRaster struct{}

var _ Raster = (*NoopRaster)(nil)

func (NoopRaster) Identify(string) (Dimensions, error)             { return Dimensions{}, ErrRasterUnavailable }
func (NoopRaster) Trim(string, float64) (Bounds, error)            { return Bounds{}, ErrRasterUnavailable }
func (NoopRaster) EdgeBounds(string, float64) (Bounds, error)      { return Bounds{}, ErrRasterUnavailable }
func (NoopRaster) PixelAt(string, float64, float64) (color.NRGBA, error) {
	return color.NRGBA{}, ErrRasterUnavailable
}
func (NoopRaster) MeanStdDev(string) (float64, float64, error) { return 0, 0, ErrRasterUnavailable }
func (NoopRaster) Crop(string, string, Rect) error             { return ErrRasterUnavailable }
func (NoopRaster) Resize(string, string, int, int) error       { return ErrRasterUnavailable }
