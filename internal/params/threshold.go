package params

import (
	"fmt"
	"math"
)

// Threshold is a luminance interval. Pixels darker than Dark are always
// set, pixels between Dark and Light are thinned out, lighter pixels stay
// unset.
type Threshold struct {
	Dark  float32
	Light float32
}

// DefaultThreshold is 20:80.
var DefaultThreshold = Threshold{Dark: 0.2, Light: 0.8}

// ParseThreshold parses a percentage or percentage range such as 20:80,
// 40:, :60, 50:50 or 50.
func ParseThreshold(s string) (Threshold, error) {
	dark, light, err := parsePair(s, 0, 100, 100)
	if err != nil {
		return Threshold{}, fmt.Errorf("threshold: %w", err)
	}
	if dark > light {
		return Threshold{}, fmt.Errorf("threshold: %w: dark %d%% is above light %d%%", ErrInvalidValue, dark, light)
	}
	return Threshold{Dark: float32(dark) / 100, Light: float32(light) / 100}, nil
}

// IsEmpty reports a zero-width interval.
func (t Threshold) IsEmpty() bool { return t.Dark == t.Light }

// IsFullRange reports the 0:100 interval.
func (t Threshold) IsFullRange() bool { return t.Dark == 0 && t.Light == 1 }

func (t Threshold) Size() float32 { return t.Light - t.Dark }

// Contains reports whether l lies strictly between Dark and Light.
func (t Threshold) Contains(l float32) bool { return t.Dark < l && l < t.Light }

func (t Threshold) Validate() error {
	if t.Dark < 0 || t.Light > 1 || t.Dark > t.Light {
		return fmt.Errorf("threshold: %w: %v", ErrInvalidValue, t)
	}
	return nil
}

func (t Threshold) String() string {
	return fmt.Sprintf("%d:%d", percent(t.Dark), percent(t.Light))
}

func (t *Threshold) Set(s string) error {
	v, err := ParseThreshold(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *Threshold) Type() string { return "percentage[:percentage]" }

func percent(v float32) int {
	return int(math.Round(float64(v) * 100))
}
