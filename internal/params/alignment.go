package params

// Alignment anchors the source picture on the canvas when the aspect
// ratios of the two differ.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignTop
	AlignRight
	AlignBottom
)

var alignments = []option[Alignment]{
	{AlignLeft, "left", "align source picture to left"},
	{AlignTop, "top", "align source picture to top"},
	{AlignRight, "right", "align source picture to right"},
	{AlignBottom, "bottom", "align source picture to bottom"},
}

// ParseAlignment parses left, top, right or bottom.
func ParseAlignment(s string) (Alignment, error) {
	return lookupValue(alignments, "alignment", s)
}

// AlignmentUsage describes every alignment for flag help.
func AlignmentUsage() string { return usage(alignments) }

func (a Alignment) String() string { return lookupName(alignments, a) }

// Set implements pflag.Value.
func (a *Alignment) Set(s string) error {
	v, err := ParseAlignment(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Type implements pflag.Value.
func (a *Alignment) Type() string { return "side" }
