// Package vscreen implements a virtual text screen of DOS character cells,
// and its rendering to UTF-8 text with or without SGR styling.
package vscreen

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"src.maxlang.sh/pkg/ui"
)

// DefaultAttr is light gray on black.
const DefaultAttr byte = 0x07

// Screen is a grid of cells stored row-major in two parallel slices of
// length Rows*Cols: the code page 437 character and the DOS attribute of
// each cell.
type Screen struct {
	Rows, Cols int
	Chars      []byte
	Attrs      []byte
}

// New creates a blank screen. Non-positive dimensions yield an empty screen.
func New(rows, cols int) *Screen {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	s := &Screen{rows, cols, make([]byte, rows*cols), make([]byte, rows*cols)}
	s.Clear()
	return s
}

// Clear fills the screen with spaces of the default attribute.
func (s *Screen) Clear() {
	for i := range s.Chars {
		s.Chars[i] = ' '
		s.Attrs[i] = DefaultAttr
	}
}

// InBounds reports whether (x, y) is a cell of the screen.
func (s *Screen) InBounds(x, y int) bool {
	return 0 <= x && x < s.Cols && 0 <= y && y < s.Rows
}

// Set sets a cell. It does nothing if the cell is out of bounds.
func (s *Screen) Set(x, y int, c, attr byte) {
	if s.InBounds(x, y) {
		i := y*s.Cols + x
		s.Chars[i], s.Attrs[i] = c, attr
	}
}

// At returns the character and attribute of a cell. Out of bounds cells read
// as a space of the default attribute.
func (s *Screen) At(x, y int) (byte, byte) {
	if !s.InBounds(x, y) {
		return ' ', DefaultAttr
	}
	i := y*s.Cols + x
	return s.Chars[i], s.Attrs[i]
}

// ClearRow clears a row from column x to its end.
func (s *Screen) ClearRow(x, y int) {
	for ; x < s.Cols; x++ {
		s.Set(x, y, ' ', DefaultAttr)
	}
}

// Row returns the characters of row y.
func (s *Screen) Row(y int) []byte {
	return s.Chars[y*s.Cols : (y+1)*s.Cols]
}

// Decode converts a code page 437 byte to a rune. NUL and the other control
// bytes are shown as spaces.
func Decode(c byte) rune {
	if c < 0x20 || c == 0x7f {
		return ' '
	}
	return charmap.CodePage437.DecodeByte(c)
}

// usedRows returns the number of rows up to the last one with a non-blank
// cell.
func (s *Screen) usedRows() int {
	for y := s.Rows - 1; y >= 0; y-- {
		if s.usedCols(y) > 0 {
			return y + 1
		}
	}
	return 0
}

// usedCols returns the number of cells of row y up to the last that is not
// a space of the default attribute.
func (s *Screen) usedCols(y int) int {
	for x := s.Cols - 1; x >= 0; x-- {
		if c, a := s.At(x, y); c != ' ' || a != DefaultAttr {
			return x + 1
		}
	}
	return 0
}

// String renders the screen as plain UTF-8 text, one line per row. Trailing
// blank cells and rows are trimmed.
func (s *Screen) String() string {
	var sb strings.Builder
	for y, n := 0, s.usedRows(); y < n; y++ {
		var line strings.Builder
		for _, c := range s.Row(y) {
			line.WriteRune(Decode(c))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RowText returns row y as styled text, trimmed like String.
func (s *Screen) RowText(y int) ui.Text {
	var t ui.Text
	for x, n := 0, s.usedCols(y); x < n; x++ {
		c, a := s.At(x, y)
		t = t.Append(ui.StyleFromAttr(a), string(Decode(c)))
	}
	return t
}

// VTString renders the screen with SGR sequences for the attributes.
func (s *Screen) VTString() string {
	var sb strings.Builder
	for y, n := 0, s.usedRows(); y < n; y++ {
		sb.WriteString(s.RowText(y).VTString())
		sb.WriteByte('\n')
	}
	return sb.String()
}
