package params

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePair parses "a:b", "a:", ":b" or "a". Empty halves take the
// defaults; a single value is used for both halves.
func parsePair(s string, defFirst, defSecond, max uint64) (first, second uint64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	parse := func(part string, def uint64) (uint64, error) {
		part = strings.TrimSpace(part)
		if part == "" {
			return def, nil
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil || v > max {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		return v, nil
	}
	if first, err = parse(parts[0], defFirst); err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return first, first, nil
	}
	if second, err = parse(parts[1], defSecond); err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
