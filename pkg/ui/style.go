// Package ui contains types for styled text and its rendering with SGR
// sequences.
package ui

import (
	"os"
	"strings"
)

// NoColor can be set to true to suppress foreground and background colors
// when rendering. It is initialized from the NO_COLOR environment variable.
var NoColor bool = os.Getenv("NO_COLOR") != ""

// Style specifies how something (mostly a string) shall be displayed.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
	Blink      bool
	Inverse    bool
}

// StyleFromAttr builds a Style from a DOS attribute byte: the foreground in
// bits 0-3, the background in bits 4-6 and blink in bit 7.
func StyleFromAttr(attr byte) Style {
	return Style{
		Foreground: DOSColor(int(attr & 0x0f)),
		Background: DOSColor(int(attr>>4) & 0x07),
		Blink:      attr&0x80 != 0,
	}
}

// SGR returns SGR sequence for the style.
func (s Style) SGR() string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Italic, "3")
	addIf(s.Underlined, "4")
	addIf(s.Blink, "5")
	addIf(s.Inverse, "7")
	if s.Foreground != nil && !NoColor {
		sgr = append(sgr, s.Foreground.fgSGR())
	}
	if s.Background != nil && !NoColor {
		sgr = append(sgr, s.Background.bgSGR())
	}

	return strings.Join(sgr, ";")
}
