package convert

import (
	"image"
	"math"

	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/disintegration/imaging"
)

// Dimensions computes the size the source is scaled to before
// classification. Fill covers the canvas, Fit stays inside it. Both axes
// are at least one pixel; an empty source stays empty.
func Dimensions(srcW, srcH, width, height int, st params.ScaleType) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	wRatio := float64(width) / float64(srcW)
	hRatio := float64(height) / float64(srcH)

	ratio := math.Min(wRatio, hRatio)
	if st == params.ScaleFill {
		ratio = math.Max(wRatio, hRatio)
	}

	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	return max(w, 1), max(h, 1)
}

// Resize scales img to exactly w x h with nearest-neighbour sampling.
func Resize(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}
