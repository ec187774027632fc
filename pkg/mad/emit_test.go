package mad

import (
	"strings"
	"testing"

	"src.maxlang.sh/pkg/tt"
)

func TestEmit(t *testing.T) {
	doc := &Document{Heaps: []*Heap{
		{Name: "global", Strings: []*String{
			{Symbol: "located", Text: "You are here.", ID: 0},
			{Symbol: "greet", Text: "hi there", RIP: "[A01welcome", HasRIP: true, ID: 1},
			{Symbol: "it's", Text: `say \"hi\"`, ID: 2},
		}},
		{Name: "scripts", User: true, Strings: []*String{
			{Symbol: "hello", Text: "Hello", Mex: true, ID: 3},
		}},
		{Name: "end"},
	}}
	want := dedent(`
		# Maximus language file "english"
		# Converted from english.mad; edit the source or delta_english.toml instead.

		[meta]
		name = "english"
		version = 1

		[global]
		located = "You are here."
		greet = { text = "hi there", rip = "[A01welcome" }
		"it's" = "say \"hi\""

		[scripts]
		_user_heap = true
		hello = { text = "Hello", flags = ["mex"] }

		[_legacy_map]
		"0x0000" = "global.located"
		"0x0001" = "global.greet"
		"0x0002" = "global.it's"
		"0x0003" = "scripts.hello"
		`)
	if got := string(Emit(doc, "english", "english.mad")); got != want {
		t.Errorf("Emit got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmit_NonEmptyEndHeapIsKept(t *testing.T) {
	doc := &Document{Heaps: []*Heap{
		{Name: "end", Strings: []*String{{Symbol: "x", Text: "y"}}},
	}}
	out := string(Emit(doc, "l", "l.mad"))
	if !strings.Contains(out, "\n[end]\nx = \"y\"\n") {
		t.Errorf("got %s", out)
	}
}

func TestTOMLKey(t *testing.T) {
	tt.Test(t, tt.Fn("tomlKey", tomlKey), tt.Table{
		tt.Args("plain_key-1").Rets("plain_key-1"),
		tt.Args("it's").Rets(`"it's"`),
		tt.Args("a$").Rets(`"a$"`),
		tt.Args("").Rets(`""`),
	})
}

func TestApplyDelta(t *testing.T) {
	out := dedent(`
		[meta]
		name = "english"

		[global]
		system = "Old BBS"
		other = "x"

		[_legacy_map]
		"0x0000" = "global.system"
		`)
	delta := "# comment\r\n[global]\r\n  system  = \"New BBS\"\r\nadded = \"y\"\r\n\r\n"
	want := dedent(`
		[meta]
		name = "english"

		[global]
		system  = "New BBS"
		other = "x"
		added = "y"

		[_legacy_map]
		"0x0000" = "global.system"
		`)
	if got := string(ApplyDelta([]byte(out), []byte(delta))); got != want {
		t.Errorf("ApplyDelta got:\n%s\nwant:\n%s", got, want)
	}
}

func TestApplyDelta_NoLegacyMap(t *testing.T) {
	got := string(ApplyDelta([]byte("a = 1\n"), []byte("b = 2")))
	if got != "a = 1\nb = 2\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplyDelta_InlineTableReplacesWholeLine(t *testing.T) {
	got := string(ApplyDelta(
		[]byte("greet = { text = \"hi\", rip = \"x\" }\n"),
		[]byte("greet = \"hello\"\n")))
	if got != "greet = \"hello\"\n" {
		t.Errorf("got %q", got)
	}
}
