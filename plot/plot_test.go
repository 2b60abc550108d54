package plot

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/coord"
)

func sampleResult() *check.Result {
	return &check.Result{
		File:     "part.nc",
		Commands: 5,
		History: []coord.Point{
			{X: 0, Y: 0, Z: 5},
			{X: 10, Y: 0, Z: 5},
			{X: 10, Y: 20, Z: -1},
		},
		Travel: check.Travel{
			X: coord.Range{Min: 0, Max: 10, Defined: true},
			Y: coord.Range{Min: 0, Max: 20, Defined: true},
			Z: coord.Range{Min: -1, Max: 5, Defined: true},
		},
		Structure: check.Structure{Declared: []int{1}, Ends: []string{"M30"}},
		Issues: []check.Issue{
			{Severity: check.SeverityWarning, File: "part.nc", Line: 3, Message: "high feed rate: 15000 mm/min"},
		},
	}
}

func TestRender(t *testing.T) {
	svg := New().Render(sampleResult())

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "XY Path (Top View)")
	assert.Contains(t, svg, "XZ Path (Front View)")
	assert.Contains(t, svg, "YZ Path (Side View)")
	assert.Contains(t, svg, "Total Commands: 5")
	assert.Contains(t, svg, "X: 0.00 to 10.00 mm")
	assert.Contains(t, svg, "Status: ✓ PASS")
	assert.Contains(t, svg, "WARNINGS:")

	// One polyline and a start/end marker pair per view.
	assert.Equal(t, 3, strings.Count(svg, `<path d="M`))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Equal(t, 3, strings.Count(svg, `fill="red"`))
}

func TestRenderFail(t *testing.T) {
	res := sampleResult()
	res.Issues = append(res.Issues, check.Issue{
		Severity: check.SeverityError, File: "part.nc", Line: 2,
		Message: `malformed coordinate/command "X<1>"`,
	})

	svg := New().Render(res)
	assert.Contains(t, svg, "Status: ✗ FAIL")
	assert.Contains(t, svg, "ERRORS:")
	assert.Contains(t, svg, "&lt;1&gt;")
	assert.NotContains(t, svg, "X<1>")
}

func TestRenderEmptyHistory(t *testing.T) {
	svg := New().Render(&check.Result{File: "empty.nc"})

	assert.Contains(t, svg, "no path data")
	assert.Contains(t, svg, "(no motion)")
	assert.NotContains(t, svg, "<circle")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRenderIssueOverflow(t *testing.T) {
	res := sampleResult()
	for i := 0; i < 8; i++ {
		res.Issues = append(res.Issues, check.Issue{
			Severity: check.SeverityError, File: "part.nc", Line: 10 + i, Message: "boom",
		})
	}

	svg := New().Render(res)
	assert.Contains(t, svg, "... and 3 more errors")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "part_analysis.svg", OutputPath("part.nc"))
	assert.Equal(t, "dir/job_analysis.svg", OutputPath("dir/job.gcode"))
	assert.Equal(t, "noext_analysis.svg", OutputPath("noext"))
}

func TestWriteFile(t *testing.T) {
	path := t.TempDir() + "/out.svg"
	require.NoError(t, New().WriteFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "XY Path (Top View)")
}
