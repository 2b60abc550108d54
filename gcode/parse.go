package gcode

import (
	"strings"
)

// Parse tokenizes an entire source text. Handy for tests and for
// short in-memory programs; file analysis should scan instead.
func Parse(data string) []Line {
	sc := NewScanner(strings.NewReader(data))
	var res []Line
	for sc.Scan() {
		res = append(res, sc.Line())
	}
	return res
}

// ParseLine tokenizes a single source line, numbered n.
func ParseLine(n int, text string) Line {
	block, bad := Tokenize(text)
	return Line{Num: n, Block: block, Bad: bad}
}
