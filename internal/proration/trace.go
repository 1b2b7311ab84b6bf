package proration

import (
	"fmt"
	"strings"
)

// Trace collects human-readable calculation lines. It replaces the hidden
// process-wide log of the original spreadsheet formulas: callers that want a
// calculation narrative pass a *Trace in, everyone else passes nil. All
// methods are safe on a nil receiver, so call sites never guard.
type Trace struct {
	lines []string
}

// Printf appends one formatted line to the trace.
func (t *Trace) Printf(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the collected lines.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	return t.lines
}

// Len returns the number of collected lines.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lines)
}

// String joins the collected lines with newlines.
func (t *Trace) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.lines, "\n")
}
