package check

import (
	"github.com/mastercactapus/gcheck/coord"
	"github.com/mastercactapus/gcheck/gcode"
)

// State is the modal machine state carried across the lines of one
// file: current position, travel extents, feed/spindle values and
// the structural markers seen so far.
type State struct {
	Pos     coord.Point
	Travel  Travel
	History []coord.Point

	// Motion is the modal motion mode (the argument of the last
	// G0-G3 word). Rapid by default, so axis-only lines move.
	Motion float64

	Feed      float64
	Speed     float64
	SpindleOn bool

	Lines     int
	Counts    map[string]int
	Structure Structure

	speedSet bool
}

// Travel is the per-axis min/max excursion of a program.
type Travel struct {
	X coord.Range `json:"x"`
	Y coord.Range `json:"y"`
	Z coord.Range `json:"z"`
}

// Union widens t to cover b, axis-wise.
func (t Travel) Union(b Travel) Travel {
	t.X = t.X.Union(b.X)
	t.Y = t.Y.Union(b.Y)
	t.Z = t.Z.Union(b.Z)
	return t
}

func NewState() *State {
	return &State{Counts: make(map[string]int)}
}

// SpeedKnown reports whether a spindle speed is in effect, either
// modally or anywhere earlier in the file.
func (st *State) SpeedKnown() bool { return st.speedSet }

// Apply folds one tokenized line into the state: modal values,
// command counters, structural markers, and, for motion lines, the
// modal position merge with history and travel tracking.
func (st *State) Apply(ln gcode.Line) {
	st.Lines++

	for _, w := range ln.Block {
		switch {
		case w.W == 'G' || w.W == 'M':
			st.Counts[w.String()]++
		case w.W == 'F':
			st.Feed = w.Arg
		case w.W == 'S':
			st.Speed = w.Arg
			st.speedSet = true
		}
		if w.IsMotion() {
			st.Motion = w.Arg
		}
	}

	st.applyMarkers(ln.Block)

	axes := ln.Block.Axes()
	if len(axes) == 0 {
		return
	}
	for _, a := range axes {
		switch a.W {
		case 'X':
			st.Pos.X = a.Arg
			st.Travel.X = st.Travel.X.Observe(a.Arg)
		case 'Y':
			st.Pos.Y = a.Arg
			st.Travel.Y = st.Travel.Y.Observe(a.Arg)
		case 'Z':
			st.Pos.Z = a.Arg
			st.Travel.Z = st.Travel.Z.Observe(a.Arg)
		}
	}
	st.History = append(st.History, st.Pos)
}

// applyMarkers records program structure commands. Issues they may
// imply are deferred to the end-of-analysis structure checks.
func (st *State) applyMarkers(b gcode.Block) {
	for _, w := range b {
		switch w.W {
		case 'O':
			st.Structure.declare(int(w.Arg))
		case 'M':
			switch w.Arg {
			case 98:
				if ok, p := b.Arg('P'); ok {
					st.Structure.call(int(p))
				}
			case 99:
				st.Structure.Returns++
			case 30, 2:
				st.Structure.end(w.String())
			case 3:
				st.SpindleOn = true
			case 5:
				st.SpindleOn = false
			}
		}
	}
}
