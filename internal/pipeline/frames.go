package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoFrames is returned when a source, after cutting, has no frames left.
var ErrNoFrames = errors.New("no frames")

// defaultDelayMS replaces a zero GIF delay, as browsers do.
const defaultDelayMS = 100

// Frame is one fully composited source frame.
type Frame struct {
	Image image.Image
	// Duration is the display time in milliseconds.
	Duration float32
}

// LoadFrames decodes src into frames: one for a picture, every
// composited frame for an animation.
func LoadFrames(src Source) ([]Frame, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer f.Close()

	if src.Kind == KindAnimation {
		frames, err := decodeGIF(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", src.Path, err)
		}
		return frames, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.Path, err)
	}
	return []Frame{{Image: img, Duration: defaultDelayMS}}, nil
}

func decodeGIF(r io.Reader) ([]Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}
	return compositeGIF(g), nil
}

// compositeGIF renders every frame of g onto the logical screen,
// applying each frame's disposal before the next one is drawn.
func compositeGIF(g *gif.GIF) []Frame {
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, pm := range g.Image {
			screen.Max.X = max(screen.Max.X, pm.Bounds().Max.X)
			screen.Max.Y = max(screen.Max.Y, pm.Bounds().Max.Y)
		}
	}

	canvas := image.NewNRGBA(screen)
	frames := make([]Frame, 0, len(g.Image))
	for i, pm := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames = append(frames, Frame{Image: imaging.Clone(canvas), Duration: delayMS(delay)})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames
}

func delayMS(centiseconds int) float32 {
	if centiseconds <= 0 {
		return defaultDelayMS
	}
	return float32(centiseconds * 10)
}

// CutFrames drops cut.Start frames from the front and cut.End from the back.
func CutFrames(frames []Frame, cut params.FrameCut) ([]Frame, error) {
	if cut.Start < 0 || cut.End < 0 || cut.Start+cut.End >= len(frames) {
		return nil, fmt.Errorf("%w: cut %s of %d frames", ErrNoFrames, cut, len(frames))
	}
	return frames[cut.Start : len(frames)-cut.End], nil
}

// ApplySpeed divides every duration by speed.
func ApplySpeed(frames []Frame, speed float32) {
	for i := range frames {
		frames[i].Duration /= speed
	}
}
