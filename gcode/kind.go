package gcode

// Kind classifies the address letter of a word. Letters outside the
// supported set still tokenize, but classify as KindUnknown so the
// checks can flag them instead of the parser dropping them.
type Kind byte

const (
	KindUnknown Kind = iota
	KindCommand      // G, M
	KindProgram      // O program number, N line number
	KindAxis         // X, Y, Z
	KindOffset       // I, J, K arc center offsets, R radius
	KindParam        // F feed, S spindle speed, T tool, P parameter
)

func (w Word) Kind() Kind {
	switch w.W {
	case 'G', 'M':
		return KindCommand
	case 'O', 'N':
		return KindProgram
	case 'X', 'Y', 'Z':
		return KindAxis
	case 'I', 'J', 'K', 'R':
		return KindOffset
	case 'F', 'S', 'T', 'P':
		return KindParam
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindProgram:
		return "program"
	case KindAxis:
		return "axis"
	case KindOffset:
		return "offset"
	case KindParam:
		return "param"
	}
	return "unknown"
}
