package encoder

import (
	"errors"
	"image"
	"time"
)

// ErrNoFrames is returned when there is nothing to encode.
var ErrNoFrames = errors.New("encoder: no frames")

// Frame is one rendered preview frame.
type Frame struct {
	Image *image.Paletted
	// Delay is how long the frame is shown. Ignored by still formats.
	Delay time.Duration
}

// Encoder encodes preview frames to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "gif").
	Format() string

	// Encode converts the frames to bytes. Still formats use the first frame.
	Encode(frames []Frame) ([]byte, error)

	// Animated reports whether every frame ends up in the output.
	Animated() bool

	// Extension returns the file extension without dot.
	Extension() string
}
