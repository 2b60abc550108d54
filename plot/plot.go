// Package plot renders an analysis result as a standalone SVG: three
// projected toolpath views plus a summary panel.
package plot

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mastercactapus/gcheck/check"
)

const (
	colorXY = "#377eb8"
	colorXZ = "#e41a1c"
	colorYZ = "#4daf4a"
)

// Renderer draws the four-panel analysis figure. The zero value is
// not usable; call New.
type Renderer struct {
	Width  float64
	Height float64
}

func New() *Renderer {
	return &Renderer{Width: 1000, Height: 800}
}

// OutputPath is where the figure for a given program file goes:
// alongside it, as <base>_analysis.svg.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_analysis.svg"
}

// Render produces the SVG document. Only the root file's own path
// history is drawn; subprogram motion happens at the call site on
// the machine, but reconstructing that interleaving is out of reach
// for a static check.
func (r *Renderer) Render(res *check.Result) string {
	xs := make([]float64, len(res.History))
	ys := make([]float64, len(res.History))
	zs := make([]float64, len(res.History))
	for i, p := range res.History {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	pw, ph := r.Width/2, r.Height/2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(r.Width), int(r.Height)))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#f8f9fa"/>`,
		int(r.Width), int(r.Height)))

	drawPath(&sb, panel{0, 0, pw, ph}, xs, ys, "XY Path (Top View)", "X (mm)", "Y (mm)", colorXY)
	drawPath(&sb, panel{pw, 0, pw, ph}, xs, zs, "XZ Path (Front View)", "X (mm)", "Z (mm)", colorXZ)
	drawPath(&sb, panel{0, ph, pw, ph}, ys, zs, "YZ Path (Side View)", "Y (mm)", "Z (mm)", colorYZ)
	drawStats(&sb, panel{pw, ph, pw, ph}, res)

	sb.WriteString(`</svg>`)
	return sb.String()
}

// panel is one quadrant of the figure in canvas coordinates.
type panel struct {
	x, y, w, h float64
}

func drawPath(sb *strings.Builder, p panel, xs, ys []float64, title, xlabel, ylabel, color string) {
	const (
		mTop, mRight, mBottom, mLeft = 40, 25, 45, 60
	)
	pw := p.w - mLeft - mRight
	ph := p.h - mTop - mBottom

	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)

	sx := func(v float64) float64 { return p.x + mLeft + (v-xmin)/(xmax-xmin)*pw }
	sy := func(v float64) float64 { return p.y + mTop + ph - (v-ymin)/(ymax-ymin)*ph }

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" font-weight="bold">%s</text>`,
		p.x+p.w/2, p.y+22, escape(title)))

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1.5"/>`,
		p.x+mLeft, p.y+mTop, p.x+mLeft, p.y+mTop+ph))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1.5"/>`,
		p.x+mLeft, p.y+mTop+ph, p.x+mLeft+pw, p.y+mTop+ph))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="11">%s</text>`,
		p.x+mLeft+pw/2, p.y+p.h-8, escape(xlabel)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="11" transform="rotate(-90, %.1f, %.1f)">%s</text>`,
		p.x+14, p.y+mTop+ph/2, p.x+14, p.y+mTop+ph/2, escape(ylabel)))

	// Grid and tick labels
	const ticks = 4
	for i := 0; i <= ticks; i++ {
		v := xmin + (xmax-xmin)*float64(i)/ticks
		px := sx(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-width="0.5"/>`,
			px, p.y+mTop, px, p.y+mTop+ph))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			px, p.y+mTop+ph+16, v))
	}
	for i := 0; i <= ticks; i++ {
		v := ymin + (ymax-ymin)*float64(i)/ticks
		py := sy(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-width="0.5"/>`,
			p.x+mLeft, py, p.x+mLeft+pw, py))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			p.x+mLeft-6, py+3, v))
	}

	if len(xs) == 0 {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" fill="#888">no path data</text>`,
			p.x+mLeft+pw/2, p.y+mTop+ph/2))
		return
	}

	var path strings.Builder
	for i := range xs {
		if i == 0 {
			fmt.Fprintf(&path, "M%.1f,%.1f", sx(xs[i]), sy(ys[i]))
		} else {
			fmt.Fprintf(&path, " L%.1f,%.1f", sx(xs[i]), sy(ys[i]))
		}
	}
	sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="1.5" fill="none" opacity="0.8"/>`,
		path.String(), color))

	// Start and end markers
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" fill="green"/>`,
		sx(xs[0]), sy(ys[0])))
	if len(xs) > 1 {
		last := len(xs) - 1
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="9" height="9" fill="red"/>`,
			sx(xs[last])-4.5, sy(ys[last])-4.5))
	}
}

func drawStats(sb *strings.Builder, p panel, res *check.Result) {
	st := res.MergedStructure()
	t := res.MergedTravel()

	status := "✓ PASS"
	if !res.Passed() {
		status = "✗ FAIL"
	}

	lines := []string{
		"G-Code Analysis Summary:",
		"",
		fmt.Sprintf("Total Commands: %d", res.TotalCommands()),
		fmt.Sprintf("Main Programs: %d", len(st.Declared)),
		fmt.Sprintf("Subprogram Calls: %d", len(st.Called)),
		"",
		"Travel Range:",
	}
	lines = append(lines, rangeLines(t)...)
	lines = append(lines,
		"",
		fmt.Sprintf("Errors: %d", res.Errors()),
		fmt.Sprintf("Warnings: %d", res.Warnings()),
		"",
		fmt.Sprintf("Status: %s", status),
	)

	writeText(sb, p.x+20, p.y+34, "#333", lines)

	issues := res.MergedIssues()
	errs := filter(issues, check.SeverityError)
	if len(errs) > 0 {
		block := []string{"ERRORS:"}
		for i, is := range errs {
			if i == 5 {
				block = append(block, fmt.Sprintf("... and %d more errors", len(errs)-5))
				break
			}
			block = append(block, "• "+is.Message)
		}
		writeText(sb, p.x+20, p.y+p.h*0.62, "#c00000", block)
	}
	warns := filter(issues, check.SeverityWarning)
	if len(warns) > 0 {
		block := []string{"WARNINGS:"}
		for i, is := range warns {
			if i == 3 {
				block = append(block, fmt.Sprintf("... and %d more warnings", len(warns)-3))
				break
			}
			block = append(block, "• "+is.Message)
		}
		writeText(sb, p.x+20, p.y+p.h*0.84, "#b36b00", block)
	}
}

func writeText(sb *strings.Builder, x, y float64, color string, lines []string) {
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="12" fill="%s">`,
		x, y, color))
	for i, ln := range lines {
		dy := 16.0
		if i == 0 {
			dy = 0
		}
		sb.WriteString(fmt.Sprintf(`<tspan x="%.1f" dy="%.0f">%s</tspan>`, x, dy, escape(ln)))
	}
	sb.WriteString(`</text>`)
}

func rangeLines(t check.Travel) []string {
	var out []string
	add := func(axis string, min, max float64, ok bool) {
		if !ok {
			return
		}
		out = append(out, fmt.Sprintf("  %s: %.2f to %.2f mm", axis, min, max))
	}
	add("X", t.X.Min, t.X.Max, t.X.Defined)
	add("Y", t.Y.Min, t.Y.Max, t.Y.Defined)
	add("Z", t.Z.Min, t.Z.Max, t.Z.Defined)
	if len(out) == 0 {
		out = append(out, "  (no motion)")
	}
	return out
}

func filter(list []check.Issue, s check.Severity) []check.Issue {
	var out []check.Issue
	for _, is := range list {
		if is.Severity == s {
			out = append(out, is)
		}
	}
	return out
}

// bounds pads the data extent so the path clears the axes, widening
// degenerate ranges so the scale stays finite.
func bounds(vs []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if math.IsInf(min, 1) {
		return 0, 1
	}
	span := max - min
	if span == 0 {
		span = 1
	}
	return min - span*0.05, max + span*0.05
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
