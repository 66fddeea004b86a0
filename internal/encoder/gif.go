package encoder

import (
	"bytes"
	"image/gif"
	"time"
)

// GIFEncoder writes every frame into a looping animated GIF.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string    { return "gif" }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Animated() bool    { return true }

func (e *GIFEncoder) Encode(frames []Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f.Image)
		anim.Delay = append(anim.Delay, centiseconds(f.Delay))
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// centiseconds rounds d to GIF delay units, never below one.
func centiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	return max(cs, 1)
}
