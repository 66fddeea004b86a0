package convert

import (
	"image"
	"image/color"
)

// Rec. 709 luma weights, scaled by lumaDiv.
const (
	lumaR   = 2126
	lumaG   = 7152
	lumaB   = 722
	lumaDiv = 10000
)

// Luma reduces img to 8-bit luminance. Colour channels are taken
// un-premultiplied and alpha is dropped.
func Luma(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := gray.Pix[y*gray.Stride:]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4:]
				dst[x] = luma(p[0], p[1], p[2])
			}
		}
		return gray
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			gray.Pix[y*gray.Stride+x] = luma(c.R, c.G, c.B)
		}
	}
	return gray
}

func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b)) / lumaDiv)
}
