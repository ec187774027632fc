package testutil

import "strings"

// Dedent removes the indentation common to all non-blank lines of text, and
// an initial newline. Blank lines are emptied.
//
// It lets fixtures such as .MAD sources and TOML files be written as indented
// raw strings that start on the line after the opening backtick.
func Dedent(text string) string {
	lines := strings.Split(strings.TrimPrefix(text, "\n"), "\n")
	margin, found := "", false
	for i, line := range lines {
		body := strings.TrimLeft(line, " \t")
		if body == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(body)]
		switch {
		case !found:
			margin, found = indent, true
		case strings.HasPrefix(indent, margin):
		case strings.HasPrefix(margin, indent):
			margin = indent
		default:
			// Mixed tabs and spaces; there is no common margin.
			margin = ""
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
