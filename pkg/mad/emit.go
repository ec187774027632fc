package mad

import (
	"bytes"
	"fmt"
	"strings"
)

// FormatVersion is written to the version key of the [meta] table.
const FormatVersion = 1

// LegacyMapSection is the name of the table mapping legacy numeric IDs to
// dotted keys.
const LegacyMapSection = "_legacy_map"

// sentinelHeap is the name of the heap that some sources declare to mark the
// end of the file. It is dropped when empty.
const sentinelHeap = "end"

// Emit renders a document as a TOML language file. The name is written to the
// [meta] table and source is mentioned in the header comment.
func Emit(doc *Document, name, source string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Maximus language file %q\n", name)
	fmt.Fprintf(&buf, "# Converted from %s; edit the source or delta_%s.toml instead.\n", source, name)
	buf.WriteString("\n[meta]\n")
	fmt.Fprintf(&buf, "name = %s\n", quote(name))
	fmt.Fprintf(&buf, "version = %d\n", FormatVersion)

	var heaps []*Heap
	for _, h := range doc.Heaps {
		if strings.EqualFold(h.Name, sentinelHeap) && len(h.Strings) == 0 {
			continue
		}
		heaps = append(heaps, h)
	}

	for _, h := range heaps {
		fmt.Fprintf(&buf, "\n[%s]\n", tomlKey(h.Name))
		if h.User {
			buf.WriteString("_user_heap = true\n")
		}
		for _, s := range h.Strings {
			buf.WriteString(tomlKey(s.Symbol))
			buf.WriteString(" = ")
			writeValue(&buf, s)
			buf.WriteByte('\n')
		}
	}

	fmt.Fprintf(&buf, "\n[%s]\n", LegacyMapSection)
	for _, h := range heaps {
		for _, s := range h.Strings {
			fmt.Fprintf(&buf, "\"0x%04x\" = %s\n", s.ID, quote(h.Name+"."+s.Symbol))
		}
	}
	return buf.Bytes()
}

// writeValue writes the simple form for plain strings, and the inline table
// form for strings with flags or a RIP variant. Texts are already escaped by
// the rewrite stages.
func writeValue(buf *bytes.Buffer, s *String) {
	if !s.Mex && !s.HasRIP {
		fmt.Fprintf(buf, `"%s"`, s.Text)
		return
	}
	fmt.Fprintf(buf, `{ text = "%s"`, s.Text)
	if s.Mex {
		buf.WriteString(`, flags = ["mex"]`)
	}
	if s.HasRIP {
		fmt.Fprintf(buf, `, rip = "%s"`, s.RIP)
	}
	buf.WriteString(" }")
}

// tomlKey returns s as a bare key if possible, and a quoted key otherwise.
func tomlKey(s string) string {
	if s == "" {
		return `""`
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; !isIdentChar(c) && c != '-' {
			return quote(s)
		}
	}
	return s
}

// quote quotes a plain string as a TOML basic string.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		writeEscaped(&sb, s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}
