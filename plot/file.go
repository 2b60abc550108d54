package plot

import (
	"fmt"
	"os"

	"github.com/mastercactapus/gcheck/check"
)

// WriteFile renders the figure for res and writes it to path.
func (r *Renderer) WriteFile(path string, res *check.Result) error {
	if err := os.WriteFile(path, []byte(r.Render(res)), 0644); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}
