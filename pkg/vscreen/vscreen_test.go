package vscreen

import (
	"testing"

	"src.maxlang.sh/pkg/testutil"
	"src.maxlang.sh/pkg/tt"
	"src.maxlang.sh/pkg/ui"
)

func TestNew(t *testing.T) {
	s := New(2, 3)
	if len(s.Chars) != 6 || len(s.Attrs) != 6 {
		t.Fatalf("got %d chars, %d attrs", len(s.Chars), len(s.Attrs))
	}
	for i := range s.Chars {
		if s.Chars[i] != ' ' || s.Attrs[i] != DefaultAttr {
			t.Errorf("cell %d is (%q, %#x)", i, s.Chars[i], s.Attrs[i])
		}
	}
	if s := New(-1, 5); s.Rows != 0 || len(s.Chars) != 0 {
		t.Errorf("got %+v for negative rows", s)
	}
}

func TestSetAndAt(t *testing.T) {
	s := New(2, 3)
	s.Set(2, 1, 'x', 0x1e)
	s.Set(3, 0, 'y', 0x1e)
	s.Set(-1, 0, 'y', 0x1e)
	if c, a := s.At(2, 1); c != 'x' || a != 0x1e {
		t.Errorf("got (%q, %#x)", c, a)
	}
	if string(s.Chars) != "     x" {
		t.Errorf("out of bounds writes changed the screen: %q", s.Chars)
	}
	if c, a := s.At(5, 5); c != ' ' || a != DefaultAttr {
		t.Errorf("out of bounds read got (%q, %#x)", c, a)
	}
}

func TestClearRow(t *testing.T) {
	s := New(1, 4)
	copy(s.Chars, "abcd")
	s.ClearRow(2, 0)
	if got := string(s.Row(0)); got != "ab  " {
		t.Errorf("got %q", got)
	}
}

func TestDecode(t *testing.T) {
	tt.Test(t, tt.Fn("Decode", Decode), tt.Table{
		tt.Args(byte('A')).Rets('A'),
		tt.Args(byte(0xc4)).Rets('─'),
		tt.Args(byte(0xdb)).Rets('█'),
		tt.Args(byte(0)).Rets(' '),
		tt.Args(byte(0x1b)).Rets(' '),
	})
}

func TestString(t *testing.T) {
	s := New(4, 5)
	copy(s.Chars, "hi   \xc4\xc4\xc4  ")
	if got, want := s.String(), "hi\n───\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVTString(t *testing.T) {
	testutil.Set(t, &ui.NoColor, false)
	s := New(3, 4)
	s.Set(0, 0, 'a', 0x1e)
	s.Set(1, 0, 'b', 0x1e)
	s.Set(2, 0, 'c', DefaultAttr)
	want := "\033[;93;44mab\033[m\033[;37;40mc\033[m\n"
	if got := s.VTString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
