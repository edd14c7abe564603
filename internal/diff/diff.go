// Package diff computes a line-by-line comparison of two script contents for
// the version views.
//
// The comparison is positional: lines are aligned strictly by index, never
// realigned to minimize the edit script. An insertion in the middle of a file
// therefore reports every following line as a remove+add pair. Callers render
// this output as-is, so the positional semantics must not be "upgraded" to an
// LCS diff.
package diff

import "strings"

// LineType tags one line of diff output.
type LineType int

const (
	Unchanged LineType = iota
	Added
	Removed
)

func (t LineType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Line is one unit of diff output carrying the literal text of the line. An
// empty Text is a real empty line, not an absent one.
type Line struct {
	Type LineType
	Text string
}

// Lines compares base against other index by index and returns the tagged
// lines in top-to-bottom order. Where both inputs have an identical line at
// an index, one Unchanged line is emitted; otherwise the base's line (if any)
// is emitted as Removed, followed by the other's line (if any) as Added.
func Lines(base, other string) []Line {
	baseLines := splitLines(base)
	otherLines := splitLines(other)

	max := len(baseLines)
	if len(otherLines) > max {
		max = len(otherLines)
	}

	var out []Line
	for i := 0; i < max; i++ {
		inBase := i < len(baseLines)
		inOther := i < len(otherLines)

		if inBase && inOther && baseLines[i] == otherLines[i] {
			out = append(out, Line{Type: Unchanged, Text: baseLines[i]})
			continue
		}
		if inBase {
			out = append(out, Line{Type: Removed, Text: baseLines[i]})
		}
		if inOther {
			out = append(out, Line{Type: Added, Text: otherLines[i]})
		}
	}
	return out
}

// splitLines splits on "\n". The empty blob has no lines; a blob ending in a
// separator has a trailing empty line. This convention is shared with the
// formatters and must stay fixed.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
