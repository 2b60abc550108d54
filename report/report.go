// Package report renders analysis results for people and machines:
// a ruled console report, a JSON document, and a flat summary used
// by the server and the run history.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/coord"
)

const rule = "============================================================"

// Console writes the human-readable analysis report.
func Console(w io.Writer, r *check.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "G-CODE ANALYSIS REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", r.File)
	fmt.Fprintf(w, "Total Commands Processed: %d\n", r.TotalCommands())

	st := r.MergedStructure()
	if len(st.Declared) > 0 {
		fmt.Fprintf(w, "\nProgram Structure:\n")
		fmt.Fprintf(w, "  Main Programs: %s\n", joinNums("O", st.Declared))
		if len(st.Called) > 0 {
			fmt.Fprintf(w, "  Subprogram Calls: %s\n", joinNums("P", st.Called))
		}
	}

	if len(r.Subs) > 0 {
		fmt.Fprintf(w, "\nSubprograms:\n")
		for _, s := range r.Subs {
			fmt.Fprintf(w, "  %s: %d commands, %d errors, %d warnings\n",
				s.File, s.Commands, countOwn(s, check.SeverityError), countOwn(s, check.SeverityWarning))
		}
	}

	t := r.MergedTravel()
	if t.X.Defined || t.Y.Defined || t.Z.Defined {
		fmt.Fprintf(w, "\nTravel Ranges:\n")
		printRange(w, "X", t.X)
		printRange(w, "Y", t.Y)
		printRange(w, "Z", t.Z)
	}

	issues := r.MergedIssues()
	fmt.Fprintf(w, "\nValidation Results:\n")
	fmt.Fprintf(w, "  Errors: %d\n", r.Errors())
	fmt.Fprintf(w, "  Warnings: %d\n", r.Warnings())

	if r.Errors() > 0 {
		fmt.Fprintf(w, "\nERRORS:\n")
		for _, is := range issues {
			if is.Severity == check.SeverityError {
				fmt.Fprintf(w, "  ✗ %s: %s\n", loc(is), is.Message)
			}
		}
	}
	if r.Warnings() > 0 {
		fmt.Fprintf(w, "\nWARNINGS:\n")
		for _, is := range issues {
			if is.Severity == check.SeverityWarning {
				fmt.Fprintf(w, "  ⚠ %s: %s\n", loc(is), is.Message)
			}
		}
	}

	fmt.Fprintf(w, "\nFINAL STATUS: %s\n", Verdict(r))
	fmt.Fprintln(w, rule)
}

// Verdict renders the pass/fail outcome.
func Verdict(r *check.Result) string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}

func loc(is check.Issue) string {
	if is.Line == 0 {
		return is.File
	}
	return fmt.Sprintf("%s:%d", is.File, is.Line)
}

func joinNums(prefix string, nums []int) string {
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, fmt.Sprintf("%s%d", prefix, n))
	}
	return strings.Join(parts, ", ")
}

func printRange(w io.Writer, axis string, rg coord.Range) {
	if !rg.Defined {
		return
	}
	fmt.Fprintf(w, "  %s: %.2f to %.2f mm\n", axis, rg.Min, rg.Max)
}

func countOwn(r *check.Result, s check.Severity) int {
	var n int
	for _, is := range r.Issues {
		if is.Severity == s {
			n++
		}
	}
	return n
}
