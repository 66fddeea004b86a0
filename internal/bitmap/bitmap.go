// Package bitmap implements the Flipper Zero 1-bit packed bitmap.
//
// The wire format is one header byte (0x00, uncompressed) followed by the
// pixels packed row-major, eight per byte, least significant bit first.
// Rows are not byte aligned: pixel (x, y) is bit width*y+x of the data.
package bitmap

import (
	"errors"
	"fmt"
)

// Header is the first byte of every uncompressed .bm file.
const Header byte = 0x00

var (
	ErrInvalidHeader = errors.New("bitmap: invalid header")
	ErrShortBuffer   = errors.New("bitmap: buffer too short")
)

// Bitmap is a width x height canvas of 1-bit pixels together with the
// offset that maps canvas coordinates onto the source image.
type Bitmap struct {
	width  uint8
	height uint8
	dx     int
	dy     int
	bytes  []byte
}

// Size returns the encoded length of a width x height bitmap, header included.
func Size(width, height uint8) int {
	return (int(width)*int(height)+7)/8 + 1
}

// New creates a bitmap with every pixel unset. The buffer is allocated
// at its full encoded size up front, so Bytes always has Size(width,
// height) bytes even when trailing pixels are never set.
func New(width, height uint8, dx, dy int) *Bitmap {
	return &Bitmap{
		width:  width,
		height: height,
		dx:     dx,
		dy:     dy,
		bytes:  make([]byte, Size(width, height)),
	}
}

// Decode wraps an encoded .bm payload. The data is copied.
func Decode(data []byte, width, height uint8) (*Bitmap, error) {
	if len(data) == 0 {
		return nil, ErrShortBuffer
	}
	if data[0] != Header {
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidHeader, data[0])
	}
	want := Size(width, height)
	if len(data) < want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortBuffer, len(data), want)
	}
	b := New(width, height, 0, 0)
	copy(b.bytes, data[:want])
	return b, nil
}

func (b *Bitmap) Width() int  { return int(b.width) }
func (b *Bitmap) Height() int { return int(b.height) }

// Offset returns the destination-to-source shift.
func (b *Bitmap) Offset() (dx, dy int) { return b.dx, b.dy }

// SrcX maps a canvas column to a source column.
func (b *Bitmap) SrcX(x int) int { return x + b.dx }

// SrcY maps a canvas row to a source row.
func (b *Bitmap) SrcY(y int) int { return y + b.dy }

// Bytes returns the encoded bitmap. The slice is shared with b.
func (b *Bitmap) Bytes() []byte { return b.bytes }

// Set marks the pixel at (x, y). Coordinates outside the canvas are ignored.
func (b *Bitmap) Set(x, y int) {
	if !b.inside(x, y) {
		return
	}
	i, bit := b.index(x, y)
	b.bytes[i] |= 1 << bit
}

// Get reports whether the pixel at (x, y) is set.
func (b *Bitmap) Get(x, y int) bool {
	if !b.inside(x, y) {
		return false
	}
	i, bit := b.index(x, y)
	if i >= len(b.bytes) {
		return false
	}
	return b.bytes[i]>>bit&1 == 1
}

// Invert flips every pixel. The header byte is left alone.
func (b *Bitmap) Invert() {
	for i := 1; i < len(b.bytes); i++ {
		b.bytes[i] = ^b.bytes[i]
	}
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for y := 0; y < int(b.height); y++ {
		for x := 0; x < int(b.width); x++ {
			if b.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Density is the share of set pixels in [0, 1].
func (b *Bitmap) Density() float64 {
	total := int(b.width) * int(b.height)
	if total == 0 {
		return 0
	}
	return float64(b.Count()) / float64(total)
}

func (b *Bitmap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(b.width) && y < int(b.height)
}

func (b *Bitmap) index(x, y int) (int, uint) {
	offset := int(b.width)*y + x
	return offset/8 + 1, uint(offset % 8)
}
