package encoder

import (
	"bytes"
	"image/png"
)

// PNGEncoder writes the first frame as a still PNG preview.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Animated() bool    { return false }

func (e *PNGEncoder) Encode(frames []Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, frames[0].Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
