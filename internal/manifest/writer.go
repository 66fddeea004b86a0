package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/AnyUserName/img2fbm/internal/params"
)

// NewMeta derives meta.txt from the displayed frames. The shortest frame
// sets the frame rate; longer frames are repeated in the order.
func NewMeta(height uint8, frames []FrameData) (*Meta, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	var total float32
	minDur := frames[0].Duration
	active := 0
	for _, f := range frames {
		if f.Duration <= 0 {
			return nil, fmt.Errorf("%w: frame %d", ErrInvalidDuration, f.Index)
		}
		total += f.Duration
		minDur = min(minDur, f.Duration)
		active = max(active, f.Index+1)
	}

	var order []int
	for _, f := range frames {
		times := int(f.Duration / minDur)
		for i := 0; i < times; i++ {
			order = append(order, f.Index)
		}
	}

	return &Meta{
		Version:       SupportedVersion,
		Width:         int(params.TargetWidth),
		Height:        int(height),
		PassiveFrames: len(order) - active,
		ActiveFrames:  active,
		FramesOrder:   order,
		ActiveCycles:  1,
		FrameRate:     int(1000 / minDur),
		Duration:      int(total),
	}, nil
}

// MarshalText renders meta.txt.
func (m *Meta) MarshalText() ([]byte, error) {
	order := make([]string, len(m.FramesOrder))
	for i, idx := range m.FramesOrder {
		order[i] = strconv.Itoa(idx)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Filetype: %s\n", metaFiletype)
	fmt.Fprintf(&sb, "Version: %d\n", m.Version)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Width: %d\n", m.Width)
	fmt.Fprintf(&sb, "Height: %d\n", m.Height)
	fmt.Fprintf(&sb, "Passive frames: %d\n", m.PassiveFrames)
	fmt.Fprintf(&sb, "Active frames: %d\n", m.ActiveFrames)
	fmt.Fprintf(&sb, "Frames order: %s\n", strings.Join(order, " "))
	fmt.Fprintf(&sb, "Active cycles: %d\n", m.ActiveCycles)
	fmt.Fprintf(&sb, "Frame rate: %d\n", m.FrameRate)
	fmt.Fprintf(&sb, "Duration: %d\n", m.Duration)
	fmt.Fprintf(&sb, "Active cooldown: %d\n", m.ActiveCooldown)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Bubble slots: %d\n", m.BubbleSlots)
	return []byte(sb.String()), nil
}

// WriteMeta writes meta.txt to path.
func WriteMeta(m *Meta, path string) error {
	data, err := m.MarshalText()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MarshalText renders the entry block. It starts with a blank line so
// blocks can be appended one after another.
func (e Entry) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", e.Name)
	fmt.Fprintf(&sb, "Min butthurt: %d\n", e.MinButthurt)
	fmt.Fprintf(&sb, "Max butthurt: %d\n", e.MaxButthurt)
	fmt.Fprintf(&sb, "Min level: %d\n", e.MinLevel)
	fmt.Fprintf(&sb, "Max level: %d\n", e.MaxLevel)
	fmt.Fprintf(&sb, "Weight: %d\n", e.Weight)
	return []byte(sb.String()), nil
}

func header() string {
	return fmt.Sprintf("Filetype: %s\nVersion: %d", manifestFiletype, SupportedVersion)
}

// AppendEntry adds e to the manifest at path. A missing file, or replace,
// starts a fresh manifest with the header.
func AppendEntry(path string, e Entry, replace bool) error {
	block, err := e.MarshalText()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	switch {
	case replace || errors.Is(statErr, fs.ErrNotExist):
		return os.WriteFile(path, append([]byte(header()), block...), 0o644)
	case statErr != nil:
		return statErr
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(block); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
