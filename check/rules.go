package check

import (
	"math"
	"strconv"

	"github.com/mastercactapus/gcheck/gcode"
)

// supportedCodes is the command set the checks recognize. Anything
// else is flagged as a warning, not an error, since controller
// dialects vary.
var supportedCodes = map[string]bool{
	"G0": true, "G1": true, "G2": true, "G3": true,
	"M2": true, "M3": true, "M5": true, "M30": true, "M98": true, "M99": true,
}

// CheckLine runs the per-line checks in fixed order: format and
// command syntax, coordinate range, feed rate, spindle/tool sanity.
// st is the state as of the previous line; callers apply the line to
// it afterwards.
func (a *Analyzer) CheckLine(ln gcode.Line, st *State) []Issue {
	var out []Issue
	out = append(out, checkFormat(ln, st)...)
	out = append(out, a.checkCoords(ln)...)
	out = append(out, a.checkFeed(ln)...)
	out = append(out, checkSpindleTool(ln, st)...)
	return out
}

// checkFormat flags malformed fragments, unknown address letters,
// unsupported command codes and arcs with no geometry.
func checkFormat(ln gcode.Line, st *State) []Issue {
	var out []Issue
	for _, frag := range ln.Bad {
		out = append(out, errorf(ln.Num, "malformed coordinate/command %q", frag))
	}
	for _, w := range ln.Block {
		switch {
		case w.Kind() == gcode.KindUnknown:
			out = append(out, warnf(ln.Num, "unknown address %s", w))
		case w.W == 'G' || w.W == 'M':
			if !supportedCodes[w.String()] {
				out = append(out, warnf(ln.Num, "unsupported code: %s", w))
			}
		}
	}
	m, ok := ln.Block.Motion()
	if !ok && len(ln.Block.Axes()) > 0 {
		// Axis words with no motion command continue the modal mode.
		m, ok = gcode.Word{W: 'G', Arg: st.Motion}, true
	}
	if ok && m.IsArc() {
		if !ln.Block.Has('I') && !ln.Block.Has('J') && !ln.Block.Has('K') && !ln.Block.Has('R') {
			out = append(out, warnf(ln.Num, "%s arc without center offset or radius", m))
		}
	}
	for _, w := range ln.Block {
		if w.W == 'M' && w.Arg == 98 && !ln.Block.Has('P') {
			out = append(out, warnf(ln.Num, "M98 call without P subprogram number"))
		}
	}
	return out
}

func (a *Analyzer) checkCoords(ln gcode.Line) []Issue {
	var out []Issue
	for _, w := range ln.Block.Axes() {
		if math.Abs(w.Arg) > a.Limits.MaxTravel {
			out = append(out, warnf(ln.Num, "%c coordinate %s exceeds typical travel range (max %s mm)",
				w.W, fnum(w.Arg), fnum(a.Limits.MaxTravel)))
		}
	}
	return out
}

func (a *Analyzer) checkFeed(ln gcode.Line) []Issue {
	ok, f := ln.Block.Arg('F')
	if !ok {
		return nil
	}
	if f <= 0 {
		return []Issue{errorf(ln.Num, "feed rate must be positive, got F%s", fnum(f))}
	}
	if f > a.Limits.MaxFeed {
		return []Issue{warnf(ln.Num, "high feed rate: %s mm/min", fnum(f))}
	}
	return nil
}

func checkSpindleTool(ln gcode.Line, st *State) []Issue {
	var out []Issue
	if ok, s := ln.Block.Arg('S'); ok && s < 0 {
		out = append(out, errorf(ln.Num, "spindle speed must not be negative, got S%s", fnum(s)))
	}
	if ok, tn := ln.Block.Arg('T'); ok && (tn < 0 || tn != math.Trunc(tn)) {
		out = append(out, warnf(ln.Num, "suspicious tool number T%s", fnum(tn)))
	}
	for _, w := range ln.Block {
		if w.W == 'M' && w.Arg == 3 && !ln.Block.Has('S') && !st.SpeedKnown() {
			out = append(out, warnf(ln.Num, "M3 spindle start with no speed set"))
		}
	}
	return out
}

// fnum formats a float the way it would be written in G-code, with
// no trailing zeros.
func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
