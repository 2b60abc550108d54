package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/coord"
)

func sampleResult() *check.Result {
	return &check.Result{
		File:     "part.nc",
		Lines:    6,
		Commands: 4,
		Counts:   map[string]int{"G0": 1, "G1": 2, "M30": 1},
		Travel: check.Travel{
			X: coord.Range{Min: -50, Max: 150, Defined: true},
			Z: coord.Range{Min: -2, Max: 5, Defined: true},
		},
		Structure: check.Structure{Declared: []int{1}, Called: []int{100}, Ends: []string{"M30"}},
		Issues: []check.Issue{
			{Severity: check.SeverityWarning, File: "part.nc", Line: 4, Message: "high feed rate: 15000 mm/min"},
		},
		Subs: []*check.Result{{
			File:     "O100.nc",
			Lines:    3,
			Commands: 2,
			Structure: check.Structure{
				Declared: []int{100},
				Returns:  1,
			},
			Issues: []check.Issue{
				{Severity: check.SeverityError, File: "O100.nc", Line: 2, Message: "feed rate must be positive, got F0"},
			},
		}},
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	Console(&buf, sampleResult())
	out := buf.String()

	assert.Contains(t, out, "G-CODE ANALYSIS REPORT")
	assert.Contains(t, out, "File: part.nc")
	assert.Contains(t, out, "Total Commands Processed: 6")
	assert.Contains(t, out, "Main Programs: O1, O100")
	assert.Contains(t, out, "Subprogram Calls: P100")
	assert.Contains(t, out, "O100.nc: 2 commands, 1 errors, 0 warnings")
	assert.Contains(t, out, "X: -50.00 to 150.00 mm")
	assert.NotContains(t, out, "Y:")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Warnings: 1")
	assert.Contains(t, out, "✗ O100.nc:2: feed rate must be positive, got F0")
	assert.Contains(t, out, "⚠ part.nc:4: high feed rate: 15000 mm/min")
	assert.Contains(t, out, "FINAL STATUS: FAIL")
}

func TestConsolePass(t *testing.T) {
	var buf bytes.Buffer
	Console(&buf, &check.Result{File: "ok.nc", Commands: 1})
	out := buf.String()

	assert.Contains(t, out, "FINAL STATUS: PASS")
	assert.NotContains(t, out, "ERRORS:")
	assert.NotContains(t, out, "Travel Ranges:")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleResult(), false))

	var doc struct {
		Verdict  string `json:"verdict"`
		Errors   int    `json:"errors"`
		Warnings int    `json:"warnings"`
		Result   struct {
			File        string `json:"file"`
			Subprograms []struct {
				File string `json:"file"`
			} `json:"subprograms"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "FAIL", doc.Verdict)
	assert.Equal(t, 1, doc.Errors)
	assert.Equal(t, 1, doc.Warnings)
	assert.Equal(t, "part.nc", doc.Result.File)
	require.Len(t, doc.Result.Subprograms, 1)
	assert.Equal(t, "O100.nc", doc.Result.Subprograms[0].File)
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "part.json")
	require.NoError(t, JSONFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Verdict string `json:"verdict"`
		Result  struct {
			File string `json:"file"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "FAIL", doc.Verdict)
	assert.Equal(t, "part.nc", doc.Result.File)

	// Written indented, like --json on stdout.
	assert.Contains(t, string(data), "  \"verdict\"")
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResult())

	assert.Equal(t, "part.nc", s.File)
	assert.Equal(t, "FAIL", s.Verdict)
	assert.Equal(t, 9, s.Lines)
	assert.Equal(t, 6, s.Commands)
	require.Len(t, s.Files, 2)
	assert.Equal(t, "part.nc", s.Files[0].File)
	assert.Equal(t, 1, s.Files[0].Warnings)
	assert.Equal(t, "O100.nc", s.Files[1].File)
	assert.Equal(t, 1, s.Files[1].Errors)
}
