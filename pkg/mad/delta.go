package mad

import (
	"strings"
)

// DeltaFileName returns the name of the overlay file for a language.
func DeltaFileName(name string) string {
	return "delta_" + name + ".toml"
}

// ApplyDelta merges an overlay into a rendered language file, line by line.
//
// Every key-bearing line of the delta replaces the first line of out with
// the same key. Lines whose key is not found are inserted at the end of the
// last heap, right before the legacy map section, or appended at the end if
// there is no such section. Comments, blank lines and table headers in the
// delta are ignored.
func ApplyDelta(out, delta []byte) []byte {
	text := string(out)
	trailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	for _, d := range strings.Split(string(delta), "\n") {
		d = strings.TrimLeft(strings.TrimRight(d, "\r"), " \t")
		key, ok := lineKey(d)
		if !ok {
			continue
		}
		if i := findKey(lines, key); i >= 0 {
			lines[i] = d
			continue
		}
		pos := insertPos(lines)
		lines = append(lines, "")
		copy(lines[pos+1:], lines[pos:])
		lines[pos] = d
	}

	result := strings.Join(lines, "\n")
	if trailingNewline {
		result += "\n"
	}
	return []byte(result)
}

// lineKey returns the key of a "key = value" line. Leading whitespace is
// ignored and trailing whitespace is trimmed from the key.
func lineKey(line string) (string, bool) {
	t := strings.TrimLeft(line, " \t")
	if t == "" || t[0] == '#' || t[0] == '[' {
		return "", false
	}
	i := strings.IndexByte(t, '=')
	if i <= 0 {
		return "", false
	}
	key := strings.TrimRight(t[:i], " \t")
	return key, key != ""
}

func findKey(lines []string, key string) int {
	for i, line := range lines {
		if k, ok := lineKey(line); ok && k == key {
			return i
		}
	}
	return -1
}

func insertPos(lines []string) int {
	header := "[" + LegacyMapSection + "]"
	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			for i > 0 && strings.TrimSpace(lines[i-1]) == "" {
				i--
			}
			return i
		}
	}
	return len(lines)
}
