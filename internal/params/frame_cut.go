package params

import (
	"fmt"
	"math"
)

// FrameCut drops frames from the start and the end of an animation.
type FrameCut struct {
	Start int
	End   int
}

// ParseFrameCut parses count[:count], e.g. 5:, :8 or 2:3.
func ParseFrameCut(s string) (FrameCut, error) {
	start, end, err := parsePair(s, 0, 0, math.MaxInt32)
	if err != nil {
		return FrameCut{}, fmt.Errorf("cut: %w", err)
	}
	return FrameCut{Start: int(start), End: int(end)}, nil
}

func (c FrameCut) String() string { return fmt.Sprintf("%d:%d", c.Start, c.End) }

func (c *FrameCut) Set(s string) error {
	v, err := ParseFrameCut(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c *FrameCut) Type() string { return "count[:count]" }
