package report

import "github.com/mastercactapus/gcheck/check"

// Summary is the flat digest of an analysis, small enough to push
// over SSE or store as a history row.
type Summary struct {
	File     string        `json:"file"`
	Verdict  string        `json:"verdict"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Lines    int           `json:"lines"`
	Commands int           `json:"commands"`
	Travel   check.Travel  `json:"travel"`
	Files    []FileSummary `json:"files"`
}

// FileSummary is one file's share of the analysis.
type FileSummary struct {
	File     string `json:"file"`
	Lines    int    `json:"lines"`
	Commands int    `json:"commands"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// Summarize flattens a result tree.
func Summarize(r *check.Result) Summary {
	s := Summary{
		File:     r.File,
		Verdict:  Verdict(r),
		Errors:   r.Errors(),
		Warnings: r.Warnings(),
		Lines:    r.TotalLines(),
		Commands: r.TotalCommands(),
		Travel:   r.MergedTravel(),
	}
	r.Walk(func(x *check.Result) {
		s.Files = append(s.Files, FileSummary{
			File:     x.File,
			Lines:    x.Lines,
			Commands: x.Commands,
			Errors:   countOwn(x, check.SeverityError),
			Warnings: countOwn(x, check.SeverityWarning),
		})
	})
	return s
}
