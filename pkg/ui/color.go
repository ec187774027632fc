package ui

import "strconv"

// Color represents a color that can be rendered with an SGR sequence.
type Color interface {
	String() string
	fgSGR() string
	bgSGR() string
}

// Builtin ANSI colors.
var (
	Black   Color = ansiColor(0)
	Red     Color = ansiColor(1)
	Green   Color = ansiColor(2)
	Yellow  Color = ansiColor(3)
	Blue    Color = ansiColor(4)
	Magenta Color = ansiColor(5)
	Cyan    Color = ansiColor(6)
	White   Color = ansiColor(7)

	BrightBlack   Color = ansiBrightColor(0)
	BrightRed     Color = ansiBrightColor(1)
	BrightGreen   Color = ansiBrightColor(2)
	BrightYellow  Color = ansiBrightColor(3)
	BrightBlue    Color = ansiBrightColor(4)
	BrightMagenta Color = ansiBrightColor(5)
	BrightCyan    Color = ansiBrightColor(6)
	BrightWhite   Color = ansiBrightColor(7)
)

var colorNames = []string{
	"black", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white",
}

type ansiColor uint8

func (c ansiColor) String() string { return colorNames[c] }
func (c ansiColor) fgSGR() string  { return strconv.Itoa(30 + int(c)) }
func (c ansiColor) bgSGR() string  { return strconv.Itoa(40 + int(c)) }

type ansiBrightColor uint8

func (c ansiBrightColor) String() string { return "bright-" + colorNames[c] }
func (c ansiBrightColor) fgSGR() string  { return strconv.Itoa(90 + int(c)) }
func (c ansiBrightColor) bgSGR() string  { return strconv.Itoa(100 + int(c)) }

// The DOS palette orders red and blue the other way around from ANSI.
var dosToANSI = [16]uint8{0, 4, 2, 6, 1, 5, 3, 7, 8, 12, 10, 14, 9, 13, 11, 15}

// DOSColor returns the color of a DOS palette index. Only the low 4 bits of
// i are used.
func DOSColor(i int) Color {
	a := dosToANSI[i&0x0f]
	if a < 8 {
		return ansiColor(a)
	}
	return ansiBrightColor(a - 8)
}
