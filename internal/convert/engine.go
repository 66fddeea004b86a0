// Package convert turns a decoded image into a Flipper Zero bitmap.
//
// The source is scaled to the canvas, reduced to luminance and then
// classified pixel by pixel in a fixed sequence of sweeps over the
// canvas. Each sweep only looks at pixels no earlier sweep has set, so
// the sweeps layer on top of each other:
//
//   - dark: pixels darker than the threshold are set;
//   - bands: pixels inside the threshold are set in five luminance bands,
//     darkest first, unless an already set pixel lies within a radius
//     that grows with the luminance;
//   - background: pixels outside the scaled source follow the
//     background policy.
//
// The result is inverted at the end when requested.
package convert

import (
	"image"
	"math"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"github.com/AnyUserName/img2fbm/internal/params"
)

// radiusScale converts a normalised luminance into a suppression radius.
const radiusScale = 4.0

// band is a half-open range of normalised luminance.
type band struct {
	lo, hi float32
}

// bands approximate processing pixels sorted by luminance.
var bands = []band{
	{0.0, 0.1},
	{0.1, 0.2},
	{0.2, 0.4},
	{0.4, 0.65},
	{0.65, 1.0},
}

// Convert scales img onto the canvas described by p and classifies it.
func Convert(img image.Image, p params.Params) *bitmap.Bitmap {
	b := img.Bounds()
	w, h := Dimensions(b.Dx(), b.Dy(), int(p.Width), int(p.Height), p.ScaleType)
	if w == 0 || h == 0 {
		return Classify(image.NewGray(image.Rectangle{}), p)
	}
	return Classify(Luma(Resize(img, w, h)), p)
}

// Classify builds the bitmap for an already scaled luminance image.
func Classify(gray *image.Gray, p params.Params) *bitmap.Bitmap {
	imgW, imgH := gray.Rect.Dx(), gray.Rect.Dy()
	width, height := int(p.Width), int(p.Height)

	dx, dy := Offset(imgW, imgH, width, height, p.Alignment)
	c := &classifier{
		bm:         bitmap.New(p.Width, p.Height, dx, dy),
		gray:       gray,
		threshold:  p.Threshold,
		background: p.Background,
		edges:      outsideEdges(imgW, imgH, width, height),
	}

	if p.Threshold.Dark > 0 {
		c.sweep(c.dark)
	}
	if !p.Threshold.IsEmpty() {
		for _, b := range bands {
			c.sweep(c.inBand(b))
		}
	}
	if p.Background != params.BackgroundInvisible {
		c.sweep(c.outside)
	}
	if p.Inverse {
		c.bm.Invert()
	}
	return c.bm
}

type classifier struct {
	bm         *bitmap.Bitmap
	gray       *image.Gray
	threshold  params.Threshold
	background params.Background
	edges      edges
}

// sweep visits every unset canvas pixel row by row and sets it when
// decide says so. Pixels set earlier in the same sweep are visible to
// later ones.
func (c *classifier) sweep(decide func(x, y int) bool) {
	for y := 0; y < c.bm.Height(); y++ {
		for x := 0; x < c.bm.Width(); x++ {
			if c.bm.Get(x, y) {
				continue
			}
			if decide(x, y) {
				c.bm.Set(x, y)
			}
		}
	}
}

// luminance returns the source luminance in [0, 1] under canvas pixel
// (x, y), or false when the pixel maps outside the source.
func (c *classifier) luminance(x, y int) (float32, bool) {
	sx, sy := c.bm.SrcX(x), c.bm.SrcY(y)
	r := c.gray.Rect
	if sx < 0 || sy < 0 || sx >= r.Dx() || sy >= r.Dy() {
		return 0, false
	}
	return float32(c.gray.GrayAt(r.Min.X+sx, r.Min.Y+sy).Y) / 255, true
}

func (c *classifier) dark(x, y int) bool {
	l, ok := c.luminance(x, y)
	return ok && l < c.threshold.Dark
}

func (c *classifier) inBand(b band) func(x, y int) bool {
	return func(x, y int) bool {
		l, ok := c.luminance(x, y)
		if !ok || !c.threshold.Contains(l) {
			return false
		}
		n := (l - c.threshold.Dark) / c.threshold.Size()
		if n < b.lo || n >= b.hi {
			return false
		}
		return !c.findInRadius(x, y, n*radiusScale)
	}
}

func (c *classifier) outside(x, y int) bool {
	if _, ok := c.luminance(x, y); ok {
		return false
	}
	e := c.edges
	switch c.background {
	case params.BackgroundVisible:
		return true
	case params.BackgroundStart:
		return x < e.left || y < e.top
	case params.BackgroundEnd:
		return x >= e.right || y >= e.bottom
	default:
		return false
	}
}

// findInRadius reports whether a set pixel lies within radius of (x, y).
// The scanned box is [-half, half) on both axes.
func (c *classifier) findInRadius(x, y int, radius float32) bool {
	half := int(math.Floor(float64(radius)))
	for ddy := -half; ddy < half; ddy++ {
		for ddx := -half; ddx < half; ddx++ {
			if !c.bm.Get(x+ddx, y+ddy) {
				continue
			}
			dist := float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
			if radius >= dist {
				return true
			}
		}
	}
	return false
}
