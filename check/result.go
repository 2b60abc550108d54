package check

import "github.com/mastercactapus/gcheck/coord"

// Result holds the analysis of one program file, plus the results of
// every subprogram file it resolved. Merged* accessors fold the whole
// tree; a subprogram reached through more than one call path is
// counted once.
type Result struct {
	File      string         `json:"file"`
	Lines     int            `json:"lines"`
	Commands  int            `json:"commands"`
	Counts    map[string]int `json:"counts,omitempty"`
	Travel    Travel         `json:"travel"`
	Issues    []Issue        `json:"issues,omitempty"`
	Structure Structure      `json:"structure"`
	Subs      []*Result      `json:"subprograms,omitempty"`

	// History is the ordered sequence of programmed positions, kept
	// for plotting but left out of reports.
	History []coord.Point `json:"-"`
}

func (r *Result) walk(seen map[*Result]bool, fn func(*Result)) {
	if r == nil || seen[r] {
		return
	}
	seen[r] = true
	fn(r)
	for _, s := range r.Subs {
		s.walk(seen, fn)
	}
}

// Walk visits every result in the tree once, parents before their
// subprograms.
func (r *Result) Walk(fn func(*Result)) {
	r.walk(map[*Result]bool{}, fn)
}

// MergedIssues returns every issue in the tree, ordered by file, then
// line, with errors before warnings.
func (r *Result) MergedIssues() []Issue {
	var out []Issue
	r.walk(map[*Result]bool{}, func(x *Result) {
		out = append(out, x.Issues...)
	})
	sortIssues(out)
	return out
}

// MergedTravel is the union of travel ranges across the tree.
func (r *Result) MergedTravel() Travel {
	var t Travel
	r.walk(map[*Result]bool{}, func(x *Result) {
		t = t.Union(x.Travel)
	})
	return t
}

// MergedStructure folds the program structure of the tree.
func (r *Result) MergedStructure() Structure {
	var s Structure
	r.walk(map[*Result]bool{}, func(x *Result) {
		s = s.union(x.Structure)
	})
	return s
}

// MergedCounts sums command counts across the tree.
func (r *Result) MergedCounts() map[string]int {
	out := make(map[string]int)
	r.walk(map[*Result]bool{}, func(x *Result) {
		for k, v := range x.Counts {
			out[k] += v
		}
	})
	return out
}

func (r *Result) TotalLines() int {
	var n int
	r.walk(map[*Result]bool{}, func(x *Result) { n += x.Lines })
	return n
}

func (r *Result) TotalCommands() int {
	var n int
	r.walk(map[*Result]bool{}, func(x *Result) { n += x.Commands })
	return n
}

// PathLength is the programmed travel distance of this file alone.
func (r *Result) PathLength() float64 {
	return coord.PathLength(r.History)
}

// Errors counts error-severity issues in the tree.
func (r *Result) Errors() int {
	var n int
	for _, is := range r.MergedIssues() {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity issues in the tree.
func (r *Result) Warnings() int {
	var n int
	for _, is := range r.MergedIssues() {
		if is.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Passed reports whether the tree has no errors. Warnings do not
// fail a program.
func (r *Result) Passed() bool {
	return r.Errors() == 0
}
