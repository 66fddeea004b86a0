//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "anims"), 0o755)

	// Wide banner (JPEG, 400x225), exercises fit letterboxing.
	writeJPEG(filepath.Join(dir, "banner.jpg"), gradient(400, 225))

	// Square logo with alpha (PNG, 100x100).
	writeImage(filepath.Join(dir, "logo.png"), alphaGradient(100, 100))

	// Bouncing bar (GIF, 64x32, 12 frames) with one repeated frame.
	writeGIF(filepath.Join(dir, "anims", "bar.gif"), bouncingBar(64, 32, 12))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func bouncingBar(w, h, n int) *gif.GIF {
	palette := color.Palette{color.White, color.Gray{Y: 128}, color.Black}
	g := &gif.GIF{}
	for i := 0; i < n; i++ {
		img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		pos := i
		if pos > n/2 {
			pos = n - i
		}
		x0 := pos * (w - 8) / (n / 2)
		for y := 0; y < h; y++ {
			for x := x0; x < x0+8 && x < w; x++ {
				img.SetColorIndex(x, y, 2)
			}
			if y%4 == 0 {
				for x := 0; x < w; x += 2 {
					if img.ColorIndexAt(x, y) == 0 {
						img.SetColorIndex(x, y, 1)
					}
				}
			}
		}
		delay := 8
		if i == 0 {
			delay = 24
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, delay)
	}
	return g
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}

func writeGIF(path string, g *gif.GIF) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		panic(err)
	}
}
