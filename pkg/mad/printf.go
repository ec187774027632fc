package mad

import (
	"fmt"
	"strings"
)

// MaxSlots is the number of positional parameters an MCI string can carry.
const MaxSlots = 15

const slotChars = "123456789ABCDEF"

// printfSpec is a parsed printf conversion specification.
type printfSpec struct {
	minus, zero bool
	// width and precision are -1 when absent.
	width, precision int
	verb             byte
	// n is the length of the specification in bytes, including the '%'.
	n int
}

// parsePrintfSpec parses a conversion specification at the start of s, which
// must begin with '%'. The grammar is
// %[flags][width][.precision][length]type.
func parsePrintfSpec(s string) (printfSpec, bool) {
	spec := printfSpec{width: -1, precision: -1}
	if len(s) < 2 || s[0] != '%' {
		return spec, false
	}
	i := 1
flags:
	for ; i < len(s); i++ {
		switch s[i] {
		case '-':
			spec.minus = true
		case '0':
			spec.zero = true
		case '+', ' ', '#':
		default:
			break flags
		}
	}
	if i < len(s) && isDigit(s[i]) {
		spec.width, i = parseDecimal(s, i)
	}
	if i < len(s) && s[i] == '.' {
		spec.precision, i = parseDecimal(s, i+1)
	}
	i = skipLengthModifier(s, i)
	if i >= len(s) || !strings.ContainsRune("diouxXeEfgGaAcsnp", rune(s[i])) {
		return spec, false
	}
	spec.verb = s[i]
	spec.n = i + 1
	return spec, true
}

func skipLengthModifier(s string, i int) int {
	for _, mod := range []string{"hh", "ll", "h", "l", "L", "z", "j", "t"} {
		if strings.HasPrefix(s[i:], mod) {
			return i + len(mod)
		}
	}
	return i
}

// parseDecimal parses a possibly empty run of digits starting at s[i]. An
// empty run yields 0.
func parseDecimal(s string, i int) (int, int) {
	v := 0
	for i < len(s) && isDigit(s[i]) {
		v = v*10 + int(s[i]-'0')
		i++
	}
	return v, i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIntegerVerb(c byte) bool { return strings.IndexByte("diouxX", c) >= 0 }

// RewritePrintf is the third rewrite stage. It replaces printf conversion
// specifications with positional parameter codes, numbered 1-9 then A-F in
// order of appearance, preceded by the MCI formatting codes that reproduce
// the width, precision and padding of the specification. "%%" is kept as is;
// unrecognized specifications are copied verbatim.
func RewritePrintf(s string) string {
	var sb strings.Builder
	slot := 0
	for i := 0; i < len(s); {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if strings.HasPrefix(s[i:], "%%") {
			sb.WriteString("%%")
			i += 2
			continue
		}
		spec, ok := parsePrintfSpec(s[i:])
		if !ok {
			sb.WriteByte('%')
			i++
			continue
		}
		if slot == MaxSlots {
			logger.Printf("more than %d parameters, copying %s verbatim", MaxSlots, s[i:i+spec.n])
			sb.WriteString(s[i : i+spec.n])
			i += spec.n
			continue
		}
		writeSlot(&sb, spec, slot)
		slot++
		i += spec.n
	}
	return sb.String()
}

func writeSlot(sb *strings.Builder, spec printfSpec, slot int) {
	if spec.precision >= 0 && (spec.verb == 's' || spec.verb == 'c') {
		fmt.Fprintf(sb, "$T%02d", clamp99(spec.precision))
	}
	if spec.width >= 0 {
		width := clamp99(spec.width)
		switch {
		case spec.minus:
			fmt.Fprintf(sb, "$R%02d", width)
		case spec.zero && isIntegerVerb(spec.verb):
			fmt.Fprintf(sb, "$l%02d0", width)
		default:
			fmt.Fprintf(sb, "$L%02d", width)
		}
	}
	sb.WriteString("|!")
	sb.WriteByte(slotChars[slot])
}
