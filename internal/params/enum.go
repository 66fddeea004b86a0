package params

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidValue is returned for any option that fails to parse.
var ErrInvalidValue = errors.New("invalid value")

// option is one entry of an enumeration's name table.
type option[T comparable] struct {
	value T
	name  string
	help  string
}

func lookupName[T comparable](table []option[T], v T) string {
	for _, o := range table {
		if o.value == v {
			return o.name
		}
	}
	return fmt.Sprintf("unknown(%#v)", v)
}

func lookupValue[T comparable](table []option[T], kind, s string) (T, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, o := range table {
		if o.name == name {
			return o.value, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidValue, kind, s, names(table))
}

func names[T comparable](table []option[T]) string {
	out := make([]string, len(table))
	for i, o := range table {
		out[i] = o.name
	}
	return strings.Join(out, "|")
}

func usage[T comparable](table []option[T]) string {
	var sb strings.Builder
	for i, o := range table {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %s", o.name, o.help)
	}
	return sb.String()
}
