package check

// Structure is the program-structure summary of one file: declared
// program numbers, called subprogram numbers, and the return/end
// markers seen. Declaration and call order is first-seen.
type Structure struct {
	Declared []int    `json:"declared,omitempty"`
	Called   []int    `json:"called,omitempty"`
	Returns  int      `json:"returns,omitempty"`
	Ends     []string `json:"ends,omitempty"`

	// Resolved are called numbers satisfied by a subprogram file
	// found on disk rather than a declaration in this file.
	Resolved []int `json:"resolved,omitempty"`
}

func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func (s *Structure) declare(n int) {
	if !contains(s.Declared, n) {
		s.Declared = append(s.Declared, n)
	}
}

func (s *Structure) call(n int) {
	if !contains(s.Called, n) {
		s.Called = append(s.Called, n)
	}
}

func (s *Structure) resolve(n int) {
	if !contains(s.Resolved, n) {
		s.Resolved = append(s.Resolved, n)
	}
}

func (s *Structure) end(marker string) {
	for _, m := range s.Ends {
		if m == marker {
			return
		}
	}
	s.Ends = append(s.Ends, marker)
}

// DeclaresLocally reports whether this file itself declares program
// number n.
func (s Structure) DeclaresLocally(n int) bool { return contains(s.Declared, n) }

// Terminated reports whether an end-of-program marker was seen.
func (s Structure) Terminated() bool { return len(s.Ends) > 0 }

// union folds b into s, preserving first-seen order across files.
func (s Structure) union(b Structure) Structure {
	for _, n := range b.Declared {
		s.declare(n)
	}
	for _, n := range b.Called {
		s.call(n)
	}
	for _, n := range b.Resolved {
		s.resolve(n)
	}
	for _, m := range b.Ends {
		s.end(m)
	}
	s.Returns += b.Returns
	return s
}
