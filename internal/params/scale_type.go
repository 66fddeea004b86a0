package params

// ScaleType selects how the source is scaled onto the canvas.
type ScaleType int

const (
	// ScaleFill covers the canvas; the overflow is cropped.
	ScaleFill ScaleType = iota
	// ScaleFit fits inside the canvas; the remainder is background.
	ScaleFit
)

var scaleTypes = []option[ScaleType]{
	{ScaleFill, "fill", "scale to fill animation bounds"},
	{ScaleFit, "fit", "scale to fit in animation bounds"},
}

// ParseScaleType parses fill or fit.
func ParseScaleType(s string) (ScaleType, error) {
	return lookupValue(scaleTypes, "scale type", s)
}

func ScaleTypeUsage() string { return usage(scaleTypes) }

func (t ScaleType) String() string { return lookupName(scaleTypes, t) }

func (t *ScaleType) Set(s string) error {
	v, err := ParseScaleType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *ScaleType) Type() string { return "type" }
