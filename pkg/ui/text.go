package ui

import (
	"fmt"
	"strings"
)

// Segment is a string that has some style applied to it.
type Segment struct {
	Style
	Text string
}

// VTString renders the styled segment using VT-style escape sequences. Any
// existing SGR state will be cleared.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return "\033[m" + s.Text
	}
	return fmt.Sprintf("\033[;%sm%s\033[m", sgr, s.Text)
}

// Text contains a list of styled Segments.
type Text []*Segment

// Append appends s with the given style, merging it into the last segment if
// the styles are the same.
func (t Text) Append(style Style, s string) Text {
	if n := len(t); n > 0 && t[n-1].Style == style {
		t[n-1].Text += s
		return t
	}
	return append(t, &Segment{style, s})
}

// String returns the concatenated texts of all segments, without styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString renders the styled text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}
