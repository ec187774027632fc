// Package mci implements the interpreter of MCI strings, the pipe-code
// markup of language strings, rendering them into a virtual screen.
//
// The interpreter is total: unknown or malformed codes are consumed without
// output, and bytes outside the code vocabulary are written literally.
package mci

import (
	"strconv"
	"strings"

	"src.maxlang.sh/pkg/vscreen"
)

type padKind int

const (
	padNone padKind = iota
	padLeft
	padRight
	padCenter
)

// pendingFormat is applied to the next expanded value.
type pendingFormat struct {
	kind  padKind
	width int
	char  byte
}

// Interp expands MCI strings into a screen. Its cursor, attribute and
// pending format persist across calls to Expand, so that strings can be
// chained.
type Interp struct {
	screen *vscreen.Screen
	mock   *Mock

	cx, cy int
	attr   byte

	pad      pendingFormat
	trim     int
	padSpace bool
}

// New creates an interpreter writing into screen and taking info code and
// parameter values from mock. A nil mock uses DefaultMock.
func New(screen *vscreen.Screen, mock *Mock) *Interp {
	if mock == nil {
		mock = DefaultMock()
	}
	return &Interp{screen: screen, mock: mock, attr: vscreen.DefaultAttr, trim: -1}
}

// Render expands s into a new screen of the given size.
func Render(rows, cols int, s string, mock *Mock) *vscreen.Screen {
	screen := vscreen.New(rows, cols)
	New(screen, mock).Expand(s)
	return screen
}

// Cursor returns the cursor position.
func (it *Interp) Cursor() (x, y int) { return it.cx, it.cy }

// Attr returns the current attribute.
func (it *Interp) Attr() byte { return it.attr }

// Reset moves the cursor home, restores the default attribute and clears
// any pending format. The screen is left intact.
func (it *Interp) Reset() {
	it.cx, it.cy = 0, 0
	it.attr = vscreen.DefaultAttr
	it.pad = pendingFormat{}
	it.trim = -1
	it.padSpace = false
}

// Expand interprets s. It stops at the first NUL byte, or when the cursor
// moves past the last row.
func (it *Interp) Expand(s string) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	for i := 0; i < len(s) && it.cy < it.screen.Rows; {
		i += it.step(s, i)
	}
}

// step interprets the token at s[i] and returns its length.
func (it *Interp) step(s string, i int) int {
	rest := s[i:]
	switch {
	case rest[0] == '\\':
		return it.backslash(rest)
	case strings.HasPrefix(rest, "||"):
		it.put('|')
		return 2
	case strings.HasPrefix(rest, "$$"):
		it.put('$')
		return 2
	case strings.HasPrefix(rest, "%t"):
		it.emitValue(strconv.Itoa(it.mock.TimeLeft))
		return 2
	case rest[0] == '$':
		if n := it.dollar(rest); n > 0 {
			return n
		}
	case strings.HasPrefix(rest, "|["):
		if n := it.cursorCode(rest[2:], true); n > 0 {
			return 2 + n
		}
	case rest[0] == '[':
		if n := it.cursorCode(rest[1:], false); n > 0 {
			return 1 + n
		}
	case rest[0] == '|':
		if n := it.pipe(rest); n > 0 {
			return n
		}
	}
	it.put(rest[0])
	return 1
}

// put writes a byte at the cursor and advances it, wrapping at the end of
// the row. Writes past the last row are dropped.
func (it *Interp) put(c byte) {
	if it.cy >= it.screen.Rows {
		return
	}
	it.screen.Set(it.cx, it.cy, c, it.attr)
	it.cx++
	if it.cx >= it.screen.Cols {
		it.cx = 0
		it.cy++
	}
}

func (it *Interp) putString(s string) {
	for i := 0; i < len(s); i++ {
		it.put(s[i])
	}
}

func (it *Interp) newline() {
	it.cx = 0
	it.cy++
}

// emitValue writes an expanded value, applying and clearing the pending
// format.
func (it *Interp) emitValue(v string) {
	if it.padSpace {
		v = " " + v
		it.padSpace = false
	}
	if it.trim >= 0 {
		if len(v) > it.trim {
			v = v[:it.trim]
		}
		it.trim = -1
	}
	if it.pad.kind != padNone {
		pad := it.pad.width - len(v)
		if pad < 0 {
			pad = 0
		}
		fill := func(n int) string { return strings.Repeat(string(it.pad.char), n) }
		switch it.pad.kind {
		case padLeft:
			v = fill(pad) + v
		case padRight:
			v = v + fill(pad)
		case padCenter:
			v = fill(pad/2) + v + fill(pad-pad/2)
		}
		it.pad = pendingFormat{}
	}
	it.putString(v)
}

// backslash interprets an escape. An unknown escape writes the backslash
// and leaves the next byte to be interpreted on its own.
func (it *Interp) backslash(s string) int {
	if len(s) < 2 {
		it.put('\\')
		return 1
	}
	switch s[1] {
	case 'n':
		it.newline()
		return 2
	case 'r', 'a':
		return 2
	case 't':
		it.cx = (it.cx/8 + 1) * 8
		if it.cx >= it.screen.Cols {
			it.newline()
		}
		return 2
	case '\\':
		it.put('\\')
		return 2
	case 'x':
		c, n := hexByte(s[2:])
		if n == 0 {
			break
		}
		if c == 0x16 {
			// An AVATAR attribute: the next byte, itself possibly escaped,
			// is the new attribute.
			attr, m := readChar(s[2+n:])
			if m > 0 {
				it.attr = attr
			}
			return 2 + n + m
		}
		it.put(c)
		return 2 + n
	}
	it.put('\\')
	return 1
}

// dollar interprets a dollar operator. It returns 0 if s doesn't start with
// one, in which case the '$' is literal.
func (it *Interp) dollar(s string) int {
	if len(s) < 2 {
		return 0
	}
	op := s[1]
	switch op {
	case 'C', 'L', 'R', 'T':
		width, ok := twoDigits(s[2:])
		if !ok {
			return 0
		}
		if op == 'T' {
			it.trim = width
		} else {
			it.pad = pendingFormat{padKindOf(op), width, ' '}
		}
		return 4
	case 'c', 'l', 'r':
		width, ok := twoDigits(s[2:])
		if !ok {
			return 0
		}
		c, n := readChar(s[4:])
		if n == 0 {
			return 0
		}
		it.pad = pendingFormat{padKindOf(op - 'a' + 'A'), width, c}
		return 4 + n
	case 'D', 'X':
		count, n := it.count(s[2:])
		if n == 0 {
			return 0
		}
		c, m := readChar(s[2+n:])
		if m == 0 {
			// The operand is missing; consume the operator.
			return 2 + n
		}
		if op == 'D' {
			for k := 0; k < count && it.cy < it.screen.Rows; k++ {
				it.put(c)
			}
		} else {
			target := count - 1
			if target > it.screen.Cols {
				target = it.screen.Cols
			}
			for k := it.cx; k < target; k++ {
				it.put(c)
			}
		}
		return 2 + n + m
	}
	return 0
}

func padKindOf(op byte) padKind {
	switch op {
	case 'L':
		return padLeft
	case 'R':
		return padRight
	case 'C':
		return padCenter
	}
	return padNone
}

// count parses the count operand of $D and $X: either two digits, or a
// positional parameter whose value is parsed as a decimal number.
func (it *Interp) count(s string) (int, int) {
	if n, ok := twoDigits(s); ok {
		return n, 2
	}
	if len(s) == 0 || s[0] != '|' {
		return 0, 0
	}
	if slot, n := slotRef(s[1:]); n > 0 {
		v, _ := strconv.Atoi(strings.TrimSpace(it.mock.Param(slot)))
		if v < 0 {
			v = 0
		}
		return v, 1 + n
	}
	return 0, 0
}

// cursorCode interprets a cursor code after "|[" or "[". It returns 0 if s
// doesn't start with one. The no-op codes 0 and 1 are only recognized after
// a pipe.
func (it *Interp) cursorCode(s string, piped bool) int {
	if len(s) == 0 {
		return 0
	}
	switch op := s[0]; op {
	case 'K':
		it.screen.ClearRow(it.cx, it.cy)
		return 1
	case '0', '1':
		if piped {
			return 1
		}
	case 'X', 'Y', 'A', 'B', 'C', 'D':
		n, ok := twoDigits(s[1:])
		if !ok {
			return 0
		}
		switch op {
		case 'X':
			it.cx = n - 1
		case 'Y':
			it.cy = n - 1
		case 'A':
			it.cy -= n
		case 'B':
			it.cy += n
		case 'C':
			it.cx += n
		case 'D':
			it.cx -= n
		}
		it.clampCursor()
		return 3
	}
	return 0
}

// clampCursor keeps the cursor column within the screen and the row from
// going negative after a motion. A row past the last one ends the expansion.
func (it *Interp) clampCursor() {
	it.cx = clamp(it.cx, 0, it.screen.Cols-1)
	if it.cy < 0 {
		it.cy = 0
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// pipe interprets a pipe code other than cursor codes. It returns 0 if s
// doesn't start with one, in which case the '|' is literal.
func (it *Interp) pipe(s string) int {
	if len(s) < 3 {
		return 0
	}
	a, b := s[1], s[2]
	switch {
	case a == '!':
		slot, n := slotRef(s[1:])
		if n == 0 {
			return 0
		}
		it.emitValue(it.mock.Param(slot))
		return 1 + n
	case isLower(a) && isLower(b):
		if v, ok := LookupTheme(s[1:3]); ok {
			it.applyColors(v)
		}
		return 3
	case isDigit(a) && isDigit(b):
		it.color(int(a-'0')*10 + int(b-'0'))
		return 3
	case a == 'U' && b == '#':
		it.emitValue(strconv.Itoa(it.mock.UserNumber))
		return 3
	case a == '&' && b == '&':
		return 3
	case isUpper(a) && isUpper(b):
		it.upperCode(s[1:3])
		return 3
	}
	return 0
}

// color applies a numeric color code. Codes 0-15 set the foreground; 16-23
// and 24-31 set the background and clear the blink bit. Other codes are
// ignored.
func (it *Interp) color(n int) {
	switch {
	case n < 16:
		it.attr = it.attr&0xf0 | byte(n)
	case n < 24:
		it.attr = it.attr&0x0f | byte(n-16)<<4
	case n < 32:
		it.attr = it.attr&0x0f | byte(n-24)<<4
	}
}

// applyColors applies the numeric color codes in a theme value, ignoring
// everything else.
func (it *Interp) applyColors(v string) {
	for i := 0; i+2 < len(v); i++ {
		if v[i] == '|' && isDigit(v[i+1]) && isDigit(v[i+2]) {
			it.color(int(v[i+1]-'0')*10 + int(v[i+2]-'0'))
			i += 2
		}
	}
}

// upperCode interprets a pair of uppercase letters: a terminal control or an
// info code. Unknown pairs are ignored.
func (it *Interp) upperCode(code string) {
	switch code {
	case "CL":
		it.screen.Clear()
		it.cx, it.cy = 0, 0
		it.attr = vscreen.DefaultAttr
	case "CR":
		it.newline()
	case "CD":
		it.attr = vscreen.DefaultAttr
	case "BS":
		if it.cx > 0 {
			it.cx--
		}
		it.screen.Set(it.cx, it.cy, ' ', it.attr)
	case "PD":
		it.padSpace = true
	case "SA", "RA", "SS", "RS", "LC", "LF":
	default:
		if v, ok := it.mock.info(code); ok {
			it.emitValue(v)
		}
	}
}

// slotRef parses "!<slot>" followed by an optional type suffix, and returns
// the parameter index and the length consumed.
func slotRef(s string) (int, int) {
	if len(s) < 2 || s[0] != '!' {
		return 0, 0
	}
	slot := strings.IndexByte(slotChars, s[1])
	if slot < 0 {
		return 0, 0
	}
	if len(s) > 2 && strings.IndexByte("dluc", s[2]) >= 0 {
		return slot, 3
	}
	return slot, 2
}

const slotChars = "123456789ABCDEF"

// readChar reads a character operand, which may be written as an \xHH
// escape. It returns the length consumed, or 0 if s is empty.
func readChar(s string) (byte, int) {
	if len(s) == 0 {
		return 0, 0
	}
	if len(s) > 2 && s[0] == '\\' && s[1] == 'x' {
		if c, n := hexByte(s[2:]); n > 0 {
			return c, 2 + n
		}
	}
	return s[0], 1
}

// hexByte parses one or two hex digits.
func hexByte(s string) (byte, int) {
	var v byte
	n := 0
	for n < 2 && n < len(s) {
		d := strings.IndexByte("0123456789abcdef", lower(s[n]))
		if d < 0 {
			break
		}
		v = v<<4 | byte(d)
		n++
	}
	return v, n
}

func twoDigits(s string) (int, bool) {
	if len(s) < 2 || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func lower(c byte) byte {
	if isUpper(c) {
		return c + 'a' - 'A'
	}
	return c
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
