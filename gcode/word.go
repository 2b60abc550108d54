package gcode

import (
	"strconv"
	"strings"
)

// Word is a single address letter paired with its numeric argument,
// e.g. G1, X-12.5, M98.
type Word struct {
	W   byte
	Arg float64
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z': // maybe someday 'A', 'B', 'C', 'U', 'V', 'W':
		return true
	}
	return false
}

// IsMotion reports whether w is one of the linear or arc motion
// commands G0-G3.
func (w Word) IsMotion() bool {
	if w.W != 'G' {
		return false
	}
	switch w.Arg {
	case 0, 1, 2, 3:
		return true
	}
	return false
}

// IsArc reports whether w is a circular interpolation command.
func (w Word) IsArc() bool {
	return w.W == 'G' && (w.Arg == 2 || w.Arg == 3)
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, 3)
}
