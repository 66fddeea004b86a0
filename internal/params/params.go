// Package params holds the conversion parameters and their parsers.
package params

import "fmt"

const (
	// TargetWidth is the fixed width of the Flipper Zero screen.
	TargetWidth uint8 = 128
	// MaxHeight is the tallest animation the device plays.
	MaxHeight uint8 = 64
)

// Params configures a single image-to-bitmap conversion.
type Params struct {
	Width      uint8
	Height     uint8
	Threshold  Threshold
	Alignment  Alignment
	ScaleType  ScaleType
	Background Background
	Inverse    bool
}

// Default returns the parameters the CLI starts from.
func Default() Params {
	return Params{
		Width:      TargetWidth,
		Height:     MaxHeight,
		Threshold:  DefaultThreshold,
		Alignment:  AlignBottom,
		ScaleType:  ScaleFit,
		Background: BackgroundInvisible,
	}
}

// Validate checks everything the conversion engine takes for granted.
func (p Params) Validate() error {
	if p.Width == 0 {
		return fmt.Errorf("width: %w: 0", ErrInvalidValue)
	}
	if p.Height == 0 || p.Height > MaxHeight {
		return fmt.Errorf("height: %w: %d (want 1-%d)", ErrInvalidValue, p.Height, MaxHeight)
	}
	return p.Threshold.Validate()
}
