package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/gcheck/coord"
)

func TestResultMergeDiamond(t *testing.T) {
	shared := &Result{
		File:  "O12.nc",
		Lines: 3,
		Issues: []Issue{
			{Severity: SeverityError, File: "O12.nc", Line: 2, Message: "boom"},
		},
	}
	root := &Result{
		File:  "main.nc",
		Lines: 4,
		Subs: []*Result{
			{File: "O10.nc", Lines: 3, Subs: []*Result{shared}},
			{File: "O11.nc", Lines: 3, Subs: []*Result{shared}},
		},
	}

	assert.Equal(t, 13, root.TotalLines())
	assert.Equal(t, 1, root.Errors())
	assert.Len(t, root.MergedIssues(), 1)
	assert.False(t, root.Passed())
}

func TestResultMergedIssueOrder(t *testing.T) {
	root := &Result{
		File: "a.nc",
		Issues: []Issue{
			{Severity: SeverityWarning, File: "a.nc", Line: 9, Message: "late"},
			{Severity: SeverityWarning, File: "a.nc", Line: 2, Message: "w"},
			{Severity: SeverityError, File: "a.nc", Line: 2, Message: "e"},
		},
		Subs: []*Result{{
			File: "O5.nc",
			Issues: []Issue{
				{Severity: SeverityError, File: "O5.nc", Line: 1, Message: "sub"},
			},
		}},
	}

	got := root.MergedIssues()
	var keys []string
	for _, is := range got {
		keys = append(keys, is.String())
	}
	assert.Equal(t, []string{
		"O5.nc:1: error: sub",
		"a.nc:2: error: e",
		"a.nc:2: warning: w",
		"a.nc:9: warning: late",
	}, keys)
}

func TestResultMergedTravel(t *testing.T) {
	root := &Result{
		Travel: Travel{X: coord.Range{Min: 0, Max: 50, Defined: true}},
		Subs: []*Result{{
			Travel: Travel{
				X: coord.Range{Min: -10, Max: 20, Defined: true},
				Z: coord.Range{Min: -5, Max: 0, Defined: true},
			},
		}},
	}

	m := root.MergedTravel()
	assert.Equal(t, coord.Range{Min: -10, Max: 50, Defined: true}, m.X)
	assert.False(t, m.Y.Defined)
	assert.Equal(t, coord.Range{Min: -5, Max: 0, Defined: true}, m.Z)
}

func TestResultMergedCounts(t *testing.T) {
	root := &Result{
		Counts: map[string]int{"G1": 2, "M30": 1},
		Subs: []*Result{{
			Counts: map[string]int{"G1": 3, "M99": 1},
		}},
	}

	assert.Equal(t, map[string]int{"G1": 5, "M30": 1, "M99": 1}, root.MergedCounts())
}

func TestResultPathLength(t *testing.T) {
	r := &Result{History: []coord.Point{{}, {X: 3, Y: 4}, {X: 3, Y: 4, Z: 12}}}
	assert.InDelta(t, 17, r.PathLength(), 1e-9)
}

func TestResultPassed(t *testing.T) {
	r := &Result{Issues: []Issue{{Severity: SeverityWarning, Message: "w"}}}
	assert.True(t, r.Passed())

	r.Issues = append(r.Issues, Issue{Severity: SeverityError, Message: "e"})
	assert.False(t, r.Passed())
	assert.Equal(t, 1, r.Warnings())
}
