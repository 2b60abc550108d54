package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mastercactapus/gcheck/check"
)

// Document is the JSON report shape: a verdict envelope around the
// full result tree.
type Document struct {
	Verdict  string        `json:"verdict"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Result   *check.Result `json:"result"`
}

// NewDocument wraps a result for JSON output.
func NewDocument(r *check.Result) Document {
	return Document{
		Verdict:  Verdict(r),
		Errors:   r.Errors(),
		Warnings: r.Warnings(),
		Result:   r,
	}
}

// JSON writes the report as JSON. Output is indented and special
// characters are left unescaped so G-code text survives round trips.
func JSON(w io.Writer, r *check.Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// JSONFile writes the JSON report to path, creating parent
// directories as needed.
func JSONFile(path string, r *check.Result) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return JSON(f, r, true)
}
