package check

import (
	"fmt"
	"sort"
)

// Severity classifies an issue. Errors fail the verdict, warnings
// are advisory and never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding against a program. Line 0 means the
// issue concerns the file as a whole.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
}

func (i Issue) String() string {
	if i.Line == 0 {
		return fmt.Sprintf("%s: %s: %s", i.File, i.Severity, i.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", i.File, i.Line, i.Severity, i.Message)
}

func errorf(line int, format string, args ...interface{}) Issue {
	return Issue{Severity: SeverityError, Line: line, Message: fmt.Sprintf(format, args...)}
}

func warnf(line int, format string, args ...interface{}) Issue {
	return Issue{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)}
}

// sortIssues orders issues by file then line then severity then
// message, so merged reports are deterministic regardless of the
// order subprograms were resolved in.
func sortIssues(list []Issue) {
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].File != list[b].File {
			return list[a].File < list[b].File
		}
		if list[a].Line != list[b].Line {
			return list[a].Line < list[b].Line
		}
		if list[a].Severity != list[b].Severity {
			return list[a].Severity == SeverityError
		}
		return list[a].Message < list[b].Message
	})
}
