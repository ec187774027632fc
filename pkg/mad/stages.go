package mad

// ConvertBody runs the three rewrite stages over the raw body of a string
// definition and returns the MCI text, escaped for a TOML basic string.
func ConvertBody(body string) string {
	return RewritePrintf(TranslateAvatar(DecodeEscapes(body)))
}

// DecodeEscapes is the first rewrite stage. It decodes the backslash escapes
// of a .MAD string literal into raw bytes. Recognized escapes are \xHH, \r,
// \n, \a, \\ and \"; any other \X yields X.
func DecodeEscapes(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			out = append(out, c)
			continue
		}
		i++
		switch s[i] {
		case 'x':
			v, n := parseHex(s[i+1:], 2)
			if n == 0 {
				out = append(out, 'x')
				continue
			}
			out = append(out, v)
			i += n
		case 'r':
			out = append(out, '\r')
		case 'n':
			out = append(out, '\n')
		case 'a':
			out = append(out, '\a')
		default:
			out = append(out, s[i])
		}
	}
	return out
}

// parseHex parses up to max hex digits at the start of s. It returns the
// value and the number of digits consumed.
func parseHex(s string, max int) (byte, int) {
	var v byte
	n := 0
	for n < max && n < len(s) {
		d, ok := hexDigit(s[n])
		if !ok {
			break
		}
		v = v<<4 | d
		n++
	}
	return v, n
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
