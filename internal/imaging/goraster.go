package imaging

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const jpegQuality = 85

// GoRaster implements Raster with the standard library image codecs and
// golang.org/x/image scaling. It keeps the last decoded image around since
// the analyzer issues several operations against the same file in a row.
type GoRaster struct {
	lastPath string
	lastImg  image.Image
}

var _ Raster = (*GoRaster)(nil)

// NewGoRaster returns the in-process raster capability.
func NewGoRaster() *GoRaster {
	return &GoRaster{}
}

func (g *GoRaster) decode(path string) (image.Image, error) {
	if g.lastPath == path && g.lastImg != nil {
		return g.lastImg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	g.lastPath = path
	g.lastImg = img
	return img, nil
}

// Invalidate drops the decode cache for path after the file was rewritten.
func (g *GoRaster) Invalidate(path string) {
	if g.lastPath == path {
		g.lastPath = ""
		g.lastImg = nil
	}
}

func (g *GoRaster) Identify(path string) (Dimensions, error) {
	img, err := g.decode(path)
	if err != nil {
		return Dimensions{}, err
	}
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}, nil
}

// Trim scans for the bounding box of pixels that differ from the corner
// background color by more than fuzz per channel. Fully uniform images
// yield an error rather than a zero-size box.
func (g *GoRaster) Trim(path string, fuzz float64) (Bounds, error) {
	img, err := g.decode(path)
	if err != nil {
		return Bounds{}, err
	}

	b := img.Bounds()
	bg := backgroundColor(img)
	tolerance := fuzz * 255

	found := false
	bounds := Bounds{Left: b.Max.X, Top: b.Max.Y, Right: b.Min.X, Bottom: b.Min.Y}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := toNRGBA(img.At(x, y))
			if px.A < 26 {
				continue // transparent counts as background
			}
			if channelDistance(px, bg) <= tolerance {
				continue
			}
			found = true
			if x < bounds.Left {
				bounds.Left = x
			}
			if x+1 > bounds.Right {
				bounds.Right = x + 1
			}
			if y < bounds.Top {
				bounds.Top = y
			}
			if y+1 > bounds.Bottom {
				bounds.Bottom = y + 1
			}
		}
	}

	if !found {
		return Bounds{}, fmt.Errorf("no content distinct from background in %s", filepath.Base(path))
	}

	bounds.Left -= b.Min.X
	bounds.Right -= b.Min.X
	bounds.Top -= b.Min.Y
	bounds.Bottom -= b.Min.Y
	return bounds, nil
}

// EdgeBounds computes the bounding box of luminance gradients above
// threshold (as a fraction of full scale).
func (g *GoRaster) EdgeBounds(path string, threshold float64) (Bounds, error) {
	img, err := g.decode(path)
	if err != nil {
		return Bounds{}, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return Bounds{}, fmt.Errorf("image too small for edge detection")
	}

	lum := make([][]float64, h)
	for y := 0; y < h; y++ {
		lum[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			lum[y][x] = luminance(toNRGBA(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}

	limit := threshold * 255
	found := false
	bounds := Bounds{Left: w, Top: h}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := math.Abs(lum[y][x+1] - lum[y][x-1])
			gy := math.Abs(lum[y+1][x] - lum[y-1][x])
			if gx+gy <= limit {
				continue
			}
			found = true
			if x < bounds.Left {
				bounds.Left = x
			}
			if x+1 > bounds.Right {
				bounds.Right = x + 1
			}
			if y < bounds.Top {
				bounds.Top = y
			}
			if y+1 > bounds.Bottom {
				bounds.Bottom = y + 1
			}
		}
	}

	if !found {
		return Bounds{}, fmt.Errorf("no edges above threshold in %s", filepath.Base(path))
	}
	return bounds, nil
}

func (g *GoRaster) PixelAt(path string, fx, fy float64) (color.NRGBA, error) {
	img, err := g.decode(path)
	if err != nil {
		return color.NRGBA{}, err
	}

	b := img.Bounds()
	x := b.Min.X + int(math.Round(fx*float64(b.Dx()-1)))
	y := b.Min.Y + int(math.Round(fy*float64(b.Dy()-1)))
	return toNRGBA(img.At(x, y)), nil
}

func (g *GoRaster) MeanStdDev(path string) (float64, float64, error) {
	img, err := g.decode(path)
	if err != nil {
		return 0, 0, err
	}

	b := img.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return 0, 0, fmt.Errorf("empty image")
	}

	var sum, sumSq float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := luminance(toNRGBA(img.At(x, y))) / 255
			sum += v
			sumSq += v * v
		}
	}

	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance), nil
}

func (g *GoRaster) Crop(src, dst string, rect Rect) error {
	img, err := g.decode(src)
	if err != nil {
		return err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	x0 := b.Min.X + int(math.Round(rect.X/100*float64(w)))
	y0 := b.Min.Y + int(math.Round(rect.Y/100*float64(h)))
	cw := int(math.Round(rect.W / 100 * float64(w)))
	ch := int(math.Round(rect.H / 100 * float64(h)))

	if cw < 1 || ch < 1 {
		return fmt.Errorf("crop rectangle %s collapses to nothing", rect)
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x0+cw > b.Max.X {
		cw = b.Max.X - x0
	}
	if y0+ch > b.Max.Y {
		ch = b.Max.Y - y0
	}

	out := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	stddraw.Draw(out, out.Bounds(), img, image.Pt(x0, y0), stddraw.Src)

	g.Invalidate(dst)
	return encode(dst, out)
}

func (g *GoRaster) Resize(src, dst string, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid resize target %dx%d", width, height)
	}

	img, err := g.decode(src)
	if err != nil {
		return err
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)

	g.Invalidate(dst)
	return encode(dst, out)
}

func encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return png.Encode(f, img)
	}
}

// backgroundColor picks the corner pixel that best represents the border.
// Ties are broken toward the top-left corner.
func backgroundColor(img image.Image) color.NRGBA {
	b := img.Bounds()
	corners := []color.NRGBA{
		toNRGBA(img.At(b.Min.X, b.Min.Y)),
		toNRGBA(img.At(b.Max.X-1, b.Min.Y)),
		toNRGBA(img.At(b.Min.X, b.Max.Y-1)),
		toNRGBA(img.At(b.Max.X-1, b.Max.Y-1)),
	}

	best := corners[0]
	bestVotes := -1
	for _, candidate := range corners {
		votes := 0
		for _, other := range corners {
			if channelDistance(candidate, other) <= 10 {
				votes++
			}
		}
		if votes > bestVotes {
			best = candidate
			bestVotes = votes
		}
	}
	return best
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func channelDistance(a, b color.NRGBA) float64 {
	dr := math.Abs(float64(a.R) - float64(b.R))
	dg := math.Abs(float64(a.G) - float64(b.G))
	db := math.Abs(float64(a.B) - float64(b.B))
	return math.Max(dr, math.Max(dg, db))
}

func luminance(c color.NRGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
