package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// pair is one "Key: value" line.
type pair struct {
	line       int
	key, value string
}

func scanPairs(r io.Reader) ([]pair, error) {
	var out []pair
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, n, line)
		}
		out = append(out, pair{n, strings.TrimSpace(key), strings.TrimSpace(value)})
	}
	return out, sc.Err()
}

func atoi(p pair) (int, error) {
	v, err := strconv.Atoi(p.value)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s: %q", ErrMalformed, p.line, p.key, p.value)
	}
	return v, nil
}

// ParseMeta reads a meta.txt.
func ParseMeta(r io.Reader) (*Meta, error) {
	pairs, err := scanPairs(r)
	if err != nil {
		return nil, err
	}

	m := &Meta{}
	ints := map[string]*int{
		"Version":         &m.Version,
		"Width":           &m.Width,
		"Height":          &m.Height,
		"Passive frames":  &m.PassiveFrames,
		"Active frames":   &m.ActiveFrames,
		"Active cycles":   &m.ActiveCycles,
		"Frame rate":      &m.FrameRate,
		"Duration":        &m.Duration,
		"Active cooldown": &m.ActiveCooldown,
		"Bubble slots":    &m.BubbleSlots,
	}
	seenType := false
	for _, p := range pairs {
		switch p.key {
		case "Filetype":
			if p.value != metaFiletype {
				return nil, fmt.Errorf("%w: filetype %q", ErrMalformed, p.value)
			}
			seenType = true
		case "Frames order":
			for _, f := range strings.Fields(p.value) {
				idx, err := strconv.Atoi(f)
				if err != nil || idx < 0 {
					return nil, fmt.Errorf("%w: line %d: frame index %q", ErrMalformed, p.line, f)
				}
				m.FramesOrder = append(m.FramesOrder, idx)
			}
		default:
			dst, ok := ints[p.key]
			if !ok {
				// Bubble definitions and future keys.
				continue
			}
			if *dst, err = atoi(p); err != nil {
				return nil, err
			}
		}
	}
	if !seenType {
		return nil, fmt.Errorf("%w: missing filetype", ErrMalformed)
	}
	return m, nil
}

// ParseManifest reads a manifest.txt and returns its entries in order.
func ParseManifest(r io.Reader) ([]Entry, error) {
	pairs, err := scanPairs(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, p := range pairs {
		if p.key == "Filetype" {
			if p.value != manifestFiletype {
				return nil, fmt.Errorf("%w: filetype %q", ErrMalformed, p.value)
			}
			continue
		}
		if p.key == "Version" {
			continue
		}
		if p.key == "Name" {
			entries = append(entries, Entry{Name: p.value})
			continue
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: line %d: %s before any Name", ErrMalformed, p.line, p.key)
		}
		e := &entries[len(entries)-1]
		var dst *int
		switch p.key {
		case "Min butthurt":
			dst = &e.MinButthurt
		case "Max butthurt":
			dst = &e.MaxButthurt
		case "Min level":
			dst = &e.MinLevel
		case "Max level":
			dst = &e.MaxLevel
		case "Weight":
			dst = &e.Weight
		default:
			continue
		}
		if *dst, err = atoi(p); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// ReadMeta parses the meta.txt at path.
func ReadMeta(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseMeta(f)
}

// ReadManifest parses the manifest.txt at path.
func ReadManifest(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseManifest(f)
}
