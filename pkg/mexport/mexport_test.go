package mexport

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
	"src.maxlang.sh/pkg/lang"
)

func testStore() *lang.Store {
	return lang.New(map[string]lang.Entry{
		"global.located": {Text: "You are here."},
		"global.menu":    {Text: "Menu", RIP: "[A01menu", HasRIP: true},
		"scripts.Hello":  {Text: "Hello |!1", Flags: []string{lang.MexFlag}},
		"scripts.bye":    {Text: "Bye", Flags: []string{lang.MexFlag}},
	})
}

func runLua(t *testing.T, code string) string {
	t.Helper()
	L := lua.NewState()
	defer L.Close()
	var sb strings.Builder
	RedirectPrint(L, &sb)
	Export(L, testStore())
	if err := L.DoString(code); err != nil {
		t.Fatalf("DoString(%q): %v", code, err)
	}
	return sb.String()
}

func TestExport(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`print(lang.get("global.located"))`, "You are here.\n"},
		{`print(lang.get("GLOBAL.LOCATED"))`, "You are here.\n"},
		{`print(lang.get("nope") == "")`, "true\n"},
		{`print(lang.get_rip("global.menu"), lang.get_rip("global.located") == "")`,
			"[A01menu\ttrue\n"},
		{`print(lang.mex["scripts.Hello"], lang.mex["scripts.bye"], lang.mex["global.menu"])`,
			"Hello |!1\tBye\tnil\n"},
		{`local n = 0
		  for _ in pairs(lang.mex) do n = n + 1 end
		  print(n)`, "2\n"},
	}
	for _, test := range tests {
		if got := runLua(t, test.code); got != test.want {
			t.Errorf("%s\n  got %q, want %q", test.code, got, test.want)
		}
	}
}

func TestExport_GetRequiresString(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	Export(L, testStore())
	if err := L.DoString(`lang.get()`); err == nil {
		t.Errorf("lang.get() got nil error")
	}
}
