// Package preview rasterises bitmaps the way the Flipper Zero screen
// shows them.
package preview

import (
	"image"
	"image/color"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"golang.org/x/image/draw"
)

var (
	// Background is the unlit LCD colour.
	Background = color.RGBA{R: 0xFF, G: 0x82, B: 0x00, A: 0xFF}
	// Foreground is a set pixel.
	Foreground = color.RGBA{A: 0xFF}
)

// Palette indexes: 0 unset, 1 set.
var Palette = color.Palette{Background, Foreground}

// Render draws bm scaled by an integer factor (values below 1 mean 1).
func Render(bm *bitmap.Bitmap, scale int) *image.Paletted {
	w, h := bm.Width(), bm.Height()
	src := image.NewPaletted(image.Rect(0, 0, w, h), Palette)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bm.Get(x, y) {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewPaletted(image.Rect(0, 0, w*scale, h*scale), Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
