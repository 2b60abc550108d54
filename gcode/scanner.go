package gcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Line is one tokenized source line. Bad holds the fragments that
// could not be tokenized; they are reported by the checks, so a
// malformed token never aborts the scan.
type Line struct {
	Num   int
	Block Block
	Bad   []string
}

// Scanner reads G-code line by line, tokenizing best-effort.
// Blank lines, comment-only lines and % delimiter lines are skipped;
// original line numbers are preserved for diagnostics.
type Scanner struct {
	br   *bufio.Reader
	num  int
	line Line
	err  error
	done bool
}

func NewScanner(r io.Reader) *Scanner {
	if br, ok := r.(*bufio.Reader); ok {
		return &Scanner{br: br}
	}

	return &Scanner{br: bufio.NewReader(r)}
}

// Scan advances to the next non-empty line. It returns false at EOF
// or on a read error, never because of malformed input.
func (s *Scanner) Scan() bool {
	for !s.done {
		raw, err := s.br.ReadString('\n')
		if err == io.EOF {
			s.done = true
			if raw == "" {
				return false
			}
		} else if err != nil {
			s.err = err
			s.done = true
			return false
		}

		s.num++
		block, bad := Tokenize(raw)
		if len(block) == 0 && len(bad) == 0 {
			continue
		}

		s.line = Line{Num: s.num, Block: block, Bad: bad}
		return true
	}
	return false
}

// Line returns the line produced by the last successful Scan.
func (s *Scanner) Line() Line { return s.line }

// Err returns the first read error, if any. Tokenizing problems are
// never errors; they surface as Line.Bad fragments.
func (s *Scanner) Err() error { return s.err }

// Tokenize splits one raw source line into words plus any malformed
// fragments. Comments are discarded, whitespace is free-form and
// letters are case-insensitive. Isolated invalid byte sequences are
// dropped rather than failing the line.
func Tokenize(raw string) (Block, []string) {
	s := strings.ToValidUTF8(raw, "")
	s = stripComments(s)
	s = strings.ToUpper(strings.Join(strings.Fields(s), ""))

	if s == "" || s[0] == '%' {
		return nil, nil
	}

	var block Block
	var bad []string
	for i := 0; i < len(s); {
		if w, next, ok := word(s, i); ok {
			block = append(block, w)
			i = next
			continue
		}

		// malformed: group everything up to the next parseable
		// word into one fragment
		j := i + 1
		for j < len(s) {
			if _, _, ok := word(s, j); ok {
				break
			}
			j++
		}
		bad = append(bad, s[i:j])
		i = j
	}
	return block, bad
}

// word attempts to parse a single letter+number token at offset i.
func word(s string, i int) (Word, int, bool) {
	c := s[i]
	if c < 'A' || c > 'Z' {
		return Word{}, 0, false
	}
	j := i + 1
	for j < len(s) && isNumByte(s[j]) {
		j++
	}
	arg, err := strconv.ParseFloat(s[i+1:j], 64)
	if err != nil {
		return Word{}, 0, false
	}
	return Word{W: c, Arg: arg}, j, true
}

func isNumByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// stripComments removes ;-to-EOL and (...) comments. An unterminated
// paren comment swallows the rest of the line.
func stripComments(s string) string {
	var b strings.Builder
	var paren bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case paren:
			if c == ')' {
				paren = false
			}
		case c == '(':
			paren = true
		case c == ';':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
