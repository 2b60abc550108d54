package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mastercactapus/gcheck/gcode"
)

// DefaultExtensions is the advisory set of file extensions that are
// treated as standard G-code.
var DefaultExtensions = []string{".nc", ".txt", ".gcode", ".cnc"}

// DefaultCandidates is the ordered list of file name templates tried
// when resolving a called subprogram number.
var DefaultCandidates = []string{"O%d.txt", "O%d.nc", "o%d.txt", "o%d.nc", "%d.txt", "%d.nc"}

// Analyzer runs the full check pipeline: tokenize, per-line checks,
// state tracking, subprogram resolution, structural checks.
type Analyzer struct {
	Limits     Limits
	Extensions []string
	Candidates []string
	Log        *zap.Logger
}

// NewAnalyzer returns an Analyzer with the given limits and default
// extension and candidate sets.
func NewAnalyzer(lim Limits) *Analyzer {
	return &Analyzer{
		Limits:     lim,
		Extensions: DefaultExtensions,
		Candidates: DefaultCandidates,
		Log:        zap.NewNop(),
	}
}

// run carries per-analysis resolver state.
type run struct {
	a *Analyzer

	// cache maps absolute file paths to finished results so a
	// subprogram reached through multiple call paths is analyzed once.
	cache map[string]*Result

	// stack marks absolute file paths on the current descent path.
	stack map[string]bool
}

func (a *Analyzer) newRun() *run {
	return &run{a: a, cache: map[string]*Result{}, stack: map[string]bool{}}
}

// AnalyzeFile analyzes the program at path, resolving subprogram
// calls relative to its directory. It returns an error only when the
// file itself cannot be read.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	a.Log.Debug("analyzing program", zap.String("file", path))

	rn := a.newRun()
	if abs, err := filepath.Abs(path); err == nil {
		rn.stack[abs] = true
	}
	res := rn.analyze(path, filepath.Dir(path), string(data))
	rn.finalize(res)
	return res, nil
}

// AnalyzeReader analyzes an in-memory program. Subprogram calls are
// resolved relative to the current directory.
func (a *Analyzer) AnalyzeReader(name string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	rn := a.newRun()
	res := rn.analyze(name, ".", string(data))
	rn.finalize(res)
	return res, nil
}

// analyze runs the pipeline over one file's content. dir is where
// subprogram candidates are searched.
func (rn *run) analyze(file, dir, data string) *Result {
	st := NewState()
	res := &Result{File: file}
	for _, ln := range gcode.Parse(data) {
		res.Issues = append(res.Issues, rn.a.CheckLine(ln, st)...)
		st.Apply(ln)
	}

	res.Lines = st.Lines
	res.Counts = st.Counts
	res.Travel = st.Travel
	res.History = st.History
	res.Structure = st.Structure
	for _, n := range st.Counts {
		res.Commands += n
	}

	if ext := strings.ToLower(filepath.Ext(file)); ext != "" && !containsString(rn.a.Extensions, ext) {
		res.Issues = append(res.Issues, warnf(0, "file extension %q may not be standard G-code format", ext))
	}

	for _, p := range res.Structure.Called {
		if res.Structure.DeclaresLocally(p) {
			continue
		}
		rn.resolve(res, dir, p)
	}

	for i := range res.Issues {
		res.Issues[i].File = file
	}
	sortIssues(res.Issues)
	return res
}

// finalize applies the whole-graph structural checks to the root
// result.
func (rn *run) finalize(root *Result) {
	if len(root.Structure.Declared) == 0 {
		root.Issues = append(root.Issues, Issue{
			Severity: SeverityWarning, File: root.File,
			Message: "no program number declared",
		})
	}
	if !root.Structure.Terminated() {
		root.Issues = append(root.Issues, Issue{
			Severity: SeverityWarning, File: root.File,
			Message: "program has no end marker (M30/M02)",
		})
	}

	called := make(map[int]bool)
	for _, c := range root.MergedStructure().Called {
		called[c] = true
	}
	root.walk(map[*Result]bool{}, func(x *Result) {
		for i, d := range x.Structure.Declared {
			// The first number declared in the root file is the main
			// program, not a subprogram.
			if x == root && i == 0 {
				continue
			}
			if !called[d] {
				x.Issues = append(x.Issues, Issue{
					Severity: SeverityWarning, File: x.File,
					Message: fmt.Sprintf("subprogram O%d defined but never called", d),
				})
			}
		}
		sortIssues(x.Issues)
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
