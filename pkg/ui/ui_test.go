package ui

import (
	"testing"

	"src.maxlang.sh/pkg/testutil"
	"src.maxlang.sh/pkg/tt"
)

func TestDOSColor(t *testing.T) {
	tt.Test(t, tt.Fn("DOSColor", DOSColor), tt.Table{
		tt.Args(0).Rets(Black),
		tt.Args(1).Rets(Blue),
		tt.Args(4).Rets(Red),
		tt.Args(6).Rets(Yellow),
		tt.Args(7).Rets(White),
		tt.Args(8).Rets(BrightBlack),
		tt.Args(14).Rets(BrightYellow),
		tt.Args(15).Rets(BrightWhite),
		tt.Args(0x1e).Rets(BrightYellow),
	})
}

func TestColorString(t *testing.T) {
	tt.Test(t, tt.Fn("Color.String", Color.String), tt.Table{
		tt.Args(Red).Rets("red"),
		tt.Args(BrightCyan).Rets("bright-cyan"),
	})
}

func TestStyleFromAttr(t *testing.T) {
	tt.Test(t, tt.Fn("StyleFromAttr", StyleFromAttr), tt.Table{
		tt.Args(byte(0x07)).Rets(Style{Foreground: White, Background: Black}),
		tt.Args(byte(0x1e)).Rets(Style{Foreground: BrightYellow, Background: Blue}),
		tt.Args(byte(0xcf)).Rets(Style{Foreground: BrightWhite, Background: Red, Blink: true}),
	})
}

func TestSegmentVTString(t *testing.T) {
	testutil.Set(t, &NoColor, false)
	tt.Test(t, tt.Fn("Segment.VTString", (*Segment).VTString), tt.Table{
		tt.Args(&Segment{Text: "foo"}).Rets("\033[mfoo"),
		tt.Args(&Segment{Style{Foreground: Red}, "foo"}).Rets("\033[;31mfoo\033[m"),
		tt.Args(&Segment{Style{Background: BrightRed}, "foo"}).Rets("\033[;101mfoo\033[m"),
		tt.Args(&Segment{Style{Bold: true, Foreground: Red, Background: Blue}, "foo"}).
			Rets("\033[;1;31;44mfoo\033[m"),
		tt.Args(&Segment{Style{Dim: true, Italic: true, Underlined: true, Blink: true, Inverse: true}, "x"}).
			Rets("\033[;2;3;4;5;7mx\033[m"),
	})
}

func TestSegmentVTString_NoColor(t *testing.T) {
	testutil.Set(t, &NoColor, true)
	seg := &Segment{Style{Foreground: Red, Background: Blue}, "foo"}
	if got := seg.VTString(); got != "\033[mfoo" {
		t.Errorf("got %q", got)
	}
}

func TestText(t *testing.T) {
	testutil.Set(t, &NoColor, false)
	red := Style{Foreground: Red}
	var text Text
	text = text.Append(red, "ab").Append(red, "c").Append(Style{}, "d")
	if len(text) != 2 {
		t.Fatalf("got %d segments, want 2", len(text))
	}
	if got := text.String(); got != "abcd" {
		t.Errorf("String got %q", got)
	}
	if got, want := text.VTString(), "\033[;31mabc\033[m\033[md"; got != want {
		t.Errorf("VTString got %q, want %q", got, want)
	}
}
