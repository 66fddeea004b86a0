package params

// Background decides which canvas pixels outside the scaled source get set.
type Background int

const (
	BackgroundInvisible Background = iota
	BackgroundStart
	BackgroundEnd
	BackgroundVisible
)

var backgrounds = []option[Background]{
	{BackgroundInvisible, "invisible", "keep transparent, white, unset, zero"},
	{BackgroundStart, "start", "make visible on the left or top side"},
	{BackgroundEnd, "end", "make visible on the right or bottom side"},
	{BackgroundVisible, "visible", "make visible, black, set, unit"},
}

// ParseBackground parses invisible, start, end or visible.
func ParseBackground(s string) (Background, error) {
	return lookupValue(backgrounds, "background", s)
}

func BackgroundUsage() string { return usage(backgrounds) }

func (b Background) String() string { return lookupName(backgrounds, b) }

func (b *Background) Set(s string) error {
	v, err := ParseBackground(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b *Background) Type() string { return "background" }
