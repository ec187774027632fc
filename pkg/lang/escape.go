package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// normalizeEscapes rewrites the escapes a converted language file may carry
// but TOML 1.0 doesn't define, \xHH and \a, into \u escapes. Other escapes
// are copied as pairs so that "\\x41" stays an escaped backslash.
func normalizeEscapes(src string) string {
	if !strings.Contains(src, `\x`) && !strings.Contains(src, `\a`) {
		return src
	}
	var sb strings.Builder
	sb.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != '\\' || i+1 == len(src) {
			sb.WriteByte(c)
			continue
		}
		switch next := src[i+1]; {
		case next == 'x' && i+3 < len(src) && isHex(src[i+2]) && isHex(src[i+3]):
			sb.WriteString(`\u00`)
			sb.WriteString(src[i+2 : i+4])
			i += 3
		case next == 'a':
			sb.WriteString(`\u0007`)
			i++
		default:
			sb.WriteByte(c)
			sb.WriteByte(next)
			i++
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// mciEscape turns a decoded TOML value back into the escaped form the MCI
// interpreter reads. Code points up to U+00FF stand for the byte of the same
// value; others are mapped to code page 437, or '?' if they have no mapping.
func mciEscape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\a':
			sb.WriteString(`\a`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r < 0x20 || 0x7f <= r && r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x7f:
			sb.WriteRune(r)
		default:
			if b, ok := charmap.CodePage437.EncodeRune(r); ok {
				fmt.Fprintf(&sb, `\x%02x`, b)
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}
