package nut

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStandard = errors.New("unknown nut standard")
	ErrUnknownSize     = errors.New("size not in standard")
)

// Standard is a square nut standard.
type Standard int

const (
	// DIN557 is the square nut with a chamfered washer face.
	DIN557 Standard = iota + 1
	// DIN562 is the thin square nut.
	DIN562
)

// Standards lists the supported standards.
var Standards = []Standard{DIN557, DIN562}

func (s Standard) String() string {
	switch s {
	case DIN557:
		return "DIN557"
	case DIN562:
		return "DIN562"
	}
	return fmt.Sprintf("Standard(%d)", int(s))
}

// ParseStandard returns the standard named by s, ignoring case and an
// optional space between "DIN" and the number.
func ParseStandard(s string) (Standard, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, std := range Standards {
		if std.String() == name {
			return std, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStandard, s)
}
