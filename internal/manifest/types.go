// Package manifest reads and writes the text files of a Flipper Zero
// dolphin animation: the per-animation meta.txt and the directory-wide
// manifest.txt.
package manifest

import "errors"

const (
	MetaFileName     = "meta.txt"
	ManifestFileName = "manifest.txt"

	metaFiletype     = "Flipper Animation"
	manifestFiletype = "Flipper Animation Manifest"

	// SupportedVersion is the only format version the device reads.
	SupportedVersion = 1
)

var (
	ErrNoFrames        = errors.New("manifest: no frames")
	ErrInvalidDuration = errors.New("manifest: frame duration must be positive")
	ErrMalformed       = errors.New("manifest: malformed file")
)

// FrameData is one displayed frame: the index of its frame_<i>.bm file
// and how long it stays on screen, in milliseconds.
type FrameData struct {
	Index    int
	Duration float32
}

// Meta is the content of meta.txt.
type Meta struct {
	Version        int
	Width          int
	Height         int
	PassiveFrames  int
	ActiveFrames   int
	FramesOrder    []int
	ActiveCycles   int
	FrameRate      int
	Duration       int
	ActiveCooldown int
	BubbleSlots    int
}

// Entry is one animation listed in manifest.txt.
type Entry struct {
	Name        string
	MinButthurt int
	MaxButthurt int
	MinLevel    int
	MaxLevel    int
	Weight      int
}

// NewEntry returns an entry with the stock mood and level ranges.
func NewEntry(name string) Entry {
	return Entry{
		Name:        name,
		MinButthurt: 0,
		MaxButthurt: 13,
		MinLevel:    1,
		MaxLevel:    3,
		Weight:      8,
	}
}

// FrameFiles is the number of distinct frame_<i>.bm files the order refers to.
func (m *Meta) FrameFiles() int {
	n := 0
	for _, i := range m.FramesOrder {
		n = max(n, i+1)
	}
	return n
}
