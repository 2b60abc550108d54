package check

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// resolve locates the file for a called subprogram number and nests
// its analysis under parent. Candidate names are tried in order in
// dir; the first that exists wins. A miss on every candidate is a
// warning on the parent, not an error: the call may target a program
// loaded on the controller some other way.
func (rn *run) resolve(parent *Result, dir string, num int) {
	for _, tpl := range rn.a.Candidates {
		name := fmt.Sprintf(tpl, num)
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if rn.stack[abs] {
			parent.Issues = append(parent.Issues, warnf(0, "circular subprogram reference: P%d resolves to %s on the current call path", num, name))
			parent.Structure.resolve(num)
			return
		}
		if sub, ok := rn.cache[abs]; ok {
			parent.Subs = append(parent.Subs, sub)
			parent.Structure.resolve(num)
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			parent.Issues = append(parent.Issues, errorf(0, "subprogram %s: %v", name, err))
			return
		}
		rn.a.Log.Debug("resolved subprogram",
			zap.Int("program", num), zap.String("file", name))

		rn.stack[abs] = true
		sub := rn.analyze(name, filepath.Dir(path), string(data))
		delete(rn.stack, abs)

		rn.cache[abs] = sub
		parent.Subs = append(parent.Subs, sub)
		parent.Structure.resolve(num)
		return
	}
	parent.Issues = append(parent.Issues, warnf(0, "subprogram P%d called but not defined", num))
}
