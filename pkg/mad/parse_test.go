package mad

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.maxlang.sh/pkg/testutil"
)

var dedent = testutil.Dedent

func parseSource(t *testing.T, files testutil.Dir, limits Limits) (*Document, error) {
	t.Helper()
	testutil.InTempDir(t)
	testutil.ApplyDir(files)
	return Parse("english.mad", limits)
}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := parseSource(t, testutil.Dir{"english.mad": src}, Limits{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParse_HeapsAndStrings(t *testing.T) {
	doc := mustParse(t, dedent(`
		; A comment
		:global
		located = "You are here.";
		bye     = "Goodbye";

		=scripts
		hello = "Hello";
		:Global
		again = "back";
		`))
	want := []*Heap{
		{Name: "global", Strings: []*String{
			{Symbol: "located", Text: "You are here.", ID: 0},
			{Symbol: "bye", Text: "Goodbye", ID: 1},
			{Symbol: "again", Text: "back", ID: 3},
		}},
		{Name: "scripts", User: true, Strings: []*String{
			{Symbol: "hello", Text: "Hello", Mex: true, ID: 2},
		}},
	}
	if diff := cmp.Diff(want, doc.Heaps); diff != "" {
		t.Errorf("heaps (-want +got):\n%s", diff)
	}
	if n := doc.NumStrings(); n != 4 {
		t.Errorf("got %d strings, want 4", n)
	}
}

func TestParse_ContinuationAndValues(t *testing.T) {
	doc := mustParse(t, dedent(`
		#define SYS "Maximus"
		#define FULL SYS " BBS"
		:global
		long = "part one "
		; interleaved comment
		       "part two";
		title = FULL "!";
		bare = UNKNOWN;
		semi = "a;b";
		`))
	got := map[string]string{}
	for _, s := range doc.Heaps[0].Strings {
		got[s.Symbol] = s.Text
	}
	want := map[string]string{
		"long":  "part one part two",
		"title": "Maximus BBS!",
		"bare":  "UNKNOWN",
		"semi":  "a;b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
}

func TestParse_Flags(t *testing.T) {
	doc := mustParse(t, dedent(`
		:global
		greet = "hi there";
		@RIP greet = "\x16\x03welcome";
		@MEX script = "for scripts";
		@DOS dos = "skipped";
		@UNIX unix = "kept";
		@WHATEVER odd = "kept too";
		@ALT lonely = "only rip";
		greet = "duplicate";
		`))
	want := []*String{
		{Symbol: "greet", Text: "hi there", RIP: "[A01welcome", HasRIP: true, ID: 0},
		{Symbol: "script", Text: "for scripts", Mex: true, ID: 1},
		{Symbol: "unix", Text: "kept", ID: 2},
		{Symbol: "odd", Text: "kept too", ID: 3},
		{Symbol: "lonely", RIP: "only rip", HasRIP: true, ID: 4},
	}
	if diff := cmp.Diff(want, doc.Heaps[0].Strings); diff != "" {
		t.Errorf("strings (-want +got):\n%s", diff)
	}
}

func TestParse_Include(t *testing.T) {
	doc, err := parseSource(t, testutil.Dir{
		"english.mad": "#include \"colors.lh\"\n:global\nafter = \"x\";\n",
		"colors.lh":   ":colors\nred = \"\\x16\\x01\\x0c\";\n",
	}, Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Heaps) != 2 || doc.Heaps[0].Name != "colors" || doc.Heaps[1].Name != "global" {
		t.Fatalf("got heaps %v", doc.Heaps)
	}
	if got := doc.Heaps[0].Strings[0].Text; got != "|12" {
		t.Errorf("got %q, want |12", got)
	}
}

var parseErrorTests = []struct {
	name   string
	files  testutil.Dir
	limits Limits
	kind   ErrorKind
}{
	{
		name:  "include cycle",
		files: testutil.Dir{"english.mad": "#include english.mad\n"},
		kind:  IncludeTooDeep,
	},
	{
		name:  "missing include",
		files: testutil.Dir{"english.mad": "#include <nope.lh>\n"},
		kind:  IncludeNotFound,
	},
	{
		name:  "string before heap",
		files: testutil.Dir{"english.mad": "orphan = \"x\";\n"},
		kind:  NoHeap,
	},
	{
		name:   "too many heaps",
		files:  testutil.Dir{"english.mad": ":a\n:b\n:c\n"},
		limits: Limits{MaxHeaps: 2},
		kind:   TooManyHeaps,
	},
	{
		name:   "heap overflow",
		files:  testutil.Dir{"english.mad": ":a\nx = \"1\";\ny = \"2\";\n"},
		limits: Limits{MaxHeapStrings: 1},
		kind:   HeapOverflow,
	},
	{
		name:   "too many defines",
		files:  testutil.Dir{"english.mad": "#define A 1\n#define B 2\n"},
		limits: Limits{MaxDefines: 1},
		kind:   TooManyDefines,
	},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseSource(t, test.files, test.limits)
			if !errors.Is(err, test.kind) {
				t.Fatalf("got error %v, want kind %v", err, test.kind)
			}
			var madErr *Error
			if !errors.As(err, &madErr) || madErr.Context == nil {
				t.Errorf("got error without context: %v", err)
			}
		})
	}
}

func TestParse_OpenFailed(t *testing.T) {
	testutil.InTempDir(t)
	_, err := Parse("missing.mad", Limits{})
	if !errors.Is(err, OpenFailed) {
		t.Errorf("got %v, want OpenFailed", err)
	}
}

func TestError_Show(t *testing.T) {
	_, err := parseSource(t, testutil.Dir{"english.mad": "orphan = \"x\";\n"}, Limits{})
	var madErr *Error
	if !errors.As(err, &madErr) {
		t.Fatalf("got %v", err)
	}
	want := "no heap: \033[31;1mstring orphan defined before any heap section\033[m\n" +
		"  english.mad, line 1:\n  " + "\033[1;4morphan = \"x\";\033[m"
	if got := madErr.Show(""); got != want {
		t.Errorf("Show got\n%q\nwant\n%q", got, want)
	}
	if got := madErr.Error(); got != "english.mad:1: no heap: string orphan defined before any heap section" {
		t.Errorf("Error got %q", got)
	}
}

func TestError_IncludeCulpritIsTarget(t *testing.T) {
	_, err := parseSource(t, testutil.Dir{"english.mad": "#include \"gone.mad\"\n"}, Limits{})
	var madErr *Error
	if !errors.As(err, &madErr) || madErr.Kind != IncludeNotFound {
		t.Fatalf("got %v, want IncludeNotFound", err)
	}
	c := madErr.Context
	if culprit := c.Source[c.From:c.To]; culprit != "gone.mad" {
		t.Errorf("got culprit %q, want %q", culprit, "gone.mad")
	}
}
