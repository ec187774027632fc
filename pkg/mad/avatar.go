package mad

import (
	"fmt"
	"strings"
)

// AVATAR control bytes.
const (
	avtCommand = 0x16
	avtRepeat  = 0x19
	formFeed   = 0x0c
)

// AVATAR commands following avtCommand.
const (
	avtAttr = 1 + iota
	avtBlink
	avtUp
	avtDown
	avtLeft
	avtRight
	avtClearEOL
	avtGoto
)

// maxRepeat is the largest count a single $D code can carry.
const maxRepeat = 99

// TranslateAvatar is the second rewrite stage. It rewrites AVATAR sequences in
// raw bytes into MCI codes and escapes every remaining byte that cannot
// appear literally in a TOML basic string.
func TranslateAvatar(b []byte) string {
	var sb strings.Builder
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == avtCommand && i+1 < len(b):
			n := translateCommand(&sb, b[i+1:])
			if n == 0 {
				writeEscaped(&sb, c)
				writeEscaped(&sb, b[i+1])
				n = 1
			}
			i += 1 + n
		case c == avtRepeat && i+2 < len(b):
			ch := b[i+1]
			if b[i+2] == '%' {
				if spec, ok := parsePrintfSpec(string(b[i+2:])); ok {
					// The count is supplied at runtime; keep the format for
					// the printf stage.
					sb.WriteString("$D")
					sb.Write(b[i+2 : i+2+spec.n])
					writeEscaped(&sb, ch)
					i += 2 + spec.n
					continue
				}
			}
			writeRepeat(&sb, ch, int(b[i+2]))
			i += 3
		case c == formFeed:
			sb.WriteString("|CL")
			i++
		default:
			writeEscaped(&sb, c)
			i++
		}
	}
	return sb.String()
}

// translateCommand translates the AVATAR command at the start of b, which
// follows an avtCommand byte. It returns the number of bytes consumed, or 0
// if the command is unknown or truncated.
func translateCommand(sb *strings.Builder, b []byte) int {
	switch b[0] {
	case avtAttr:
		if len(b) < 2 {
			return 0
		}
		if b[1] == '%' {
			if _, ok := parsePrintfSpec(string(b[1:])); ok {
				// Dynamic color; the printf stage turns the format into a
				// positional parameter that expands to a pipe color at
				// runtime.
				return 1
			}
		}
		writeAttr(sb, b[1])
		return 2
	case avtBlink:
		sb.WriteString("|24")
		return 1
	case avtUp:
		sb.WriteString("[A01")
		return 1
	case avtDown:
		sb.WriteString("[B01")
		return 1
	case avtLeft:
		sb.WriteString("[D01")
		return 1
	case avtRight:
		sb.WriteString("[C01")
		return 1
	case avtClearEOL:
		sb.WriteString("[K")
		return 1
	case avtGoto:
		if len(b) < 3 {
			return 0
		}
		fmt.Fprintf(sb, "[Y%02d[X%02d", clamp99(int(b[1])), clamp99(int(b[2])))
		return 3
	}
	return 0
}

// writeAttr writes the pipe color codes for a DOS attribute byte.
func writeAttr(sb *strings.Builder, attr byte) {
	fg := attr & 0x0f
	bg := (attr >> 4) & 0x07
	fmt.Fprintf(sb, "|%02d", fg)
	if bg != 0 {
		fmt.Fprintf(sb, "|%02d", 16+bg)
	}
	if attr&0x80 != 0 {
		sb.WriteString("|24")
	}
}

// writeRepeat writes $D codes repeating ch count times, split into runs that
// fit in two digits.
func writeRepeat(sb *strings.Builder, ch byte, count int) {
	for {
		n := count
		if n > maxRepeat {
			n = maxRepeat
		}
		fmt.Fprintf(sb, "$D%02d", n)
		writeEscaped(sb, ch)
		count -= n
		if count <= 0 {
			return
		}
	}
}

// writeEscaped writes a byte as it appears inside a TOML basic string. Control
// bytes, DEL and bytes outside ASCII are written as \xHH escapes.
func writeEscaped(sb *strings.Builder, c byte) {
	switch c {
	case '\n':
		sb.WriteString(`\n`)
	case '\r':
		sb.WriteString(`\r`)
	case '\t':
		sb.WriteString(`\t`)
	case '\a':
		sb.WriteString(`\a`)
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	default:
		if c < 0x20 || c >= 0x7f {
			fmt.Fprintf(sb, `\x%02x`, c)
		} else {
			sb.WriteByte(c)
		}
	}
}

func clamp99(n int) int {
	if n > 99 {
		return 99
	}
	return n
}
