package diff

import (
	"fmt"
	"strings"
)

// FormatUnified renders diff lines top to bottom with diff(1)-style markers:
// "+ " for added, "- " for removed, two spaces for unchanged.
func FormatUnified(lines []Line) string {
	var sb strings.Builder
	for _, line := range lines {
		switch line.Type {
		case Added:
			sb.WriteString("+ ")
		case Removed:
			sb.WriteString("- ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSideBySide renders the base in a left column and the comparison in a
// right column. A Removed line immediately followed by an Added line came
// from the same index and shares a row. width is the left column's width in
// bytes; longer lines are cut.
func FormatSideBySide(lines []Line, width int) string {
	if width < 4 {
		width = 40
	}

	var sb strings.Builder
	for i := 0; i < len(lines); i++ {
		switch lines[i].Type {
		case Unchanged:
			writeRow(&sb, ' ', lines[i].Text, ' ', lines[i].Text, width)
		case Removed:
			if i+1 < len(lines) && lines[i+1].Type == Added {
				writeRow(&sb, '-', lines[i].Text, '+', lines[i+1].Text, width)
				i++
			} else {
				writeRow(&sb, '-', lines[i].Text, ' ', "", width)
			}
		case Added:
			writeRow(&sb, ' ', "", '+', lines[i].Text, width)
		}
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, leftMark byte, left string, rightMark byte, right string, width int) {
	row := fmt.Sprintf("%c %-*s | %c %s", leftMark, width, cut(left, width), rightMark, cut(right, width))
	sb.WriteString(strings.TrimRight(row, " "))
	sb.WriteString("\n")
}

func cut(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-1] + "~"
}

// Stats counts the lines of a diff by tag, for summary output.
func Stats(lines []Line) (added, removed, unchanged int) {
	for _, line := range lines {
		switch line.Type {
		case Added:
			added++
		case Removed:
			removed++
		default:
			unchanged++
		}
	}
	return added, removed, unchanged
}
