package gcode

import (
	"strings"
)

// Block is the ordered sequence of words tokenized from one line.
type Block []Word

// Arg returns the argument of the first word with the given letter.
func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// Has reports whether any word with the given letter is present.
func (b Block) Has(w byte) bool {
	ok, _ := b.Arg(w)
	return ok
}

// Axes returns only the axis words of the block, in order.
func (b Block) Axes() Block {
	res := make(Block, 0, len(b))
	for _, g := range b {
		if g.IsAxis() {
			res = append(res, g)
		}
	}
	return res
}

// Motion returns the motion command word of the block, if any.
func (b Block) Motion() (Word, bool) {
	for _, g := range b {
		if g.IsMotion() {
			return g, true
		}
	}
	return Word{}, false
}

func (b Block) String() string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}
