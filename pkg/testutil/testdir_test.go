package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.maxlang.sh/pkg/must"
)

func TestTempDir_DirHasSymlinksResolved(t *testing.T) {
	dir := TempDir(t)

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	if dir != resolved {
		t.Errorf("TempDir returns %q, but it resolves to %q", dir, resolved)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"foo": "foo content",
		"lang": Dir{
			"english.mad": ":global\n",
		},
	})

	if got := must.ReadFileString("foo"); got != "foo content" {
		t.Errorf("foo contains %q", got)
	}
	if got := must.ReadFileString(filepath.Join("lang", "english.mad")); got != ":global\n" {
		t.Errorf("lang/english.mad contains %q", got)
	}
}

func TestSetenv(t *testing.T) {
	const name = "MAXLANG_TESTUTIL_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	Setenv(c, name, "x")
	if v := os.Getenv(name); v != "x" {
		t.Errorf("got %q, want x", v)
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("variable still set after cleanup")
	}
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}
