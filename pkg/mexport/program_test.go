package mexport_test

import (
	"testing"

	. "src.maxlang.sh/pkg/mexport"
	. "src.maxlang.sh/pkg/prog/progtest"
	"src.maxlang.sh/pkg/testutil"
)

func TestProgram(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"english.toml": testutil.Dedent(`
			[global]
			located = "You are here."

			[scripts]
			hello = { text = "Hello |!1", flags = ["mex"] }
			`),
		"hello.lua": `print(lang.get("global.located"), lang.mex["scripts.hello"])`,
		"bad.lua":   `error("boom")`,
	})

	Test(t, &Program{},
		ThatMaxlang("-mex-script", "hello.lua", "-lang", "english.toml").
			WritesStdout("You are here.\tHello |!1\n"),
		ThatMaxlang("-mex-script", "bad.lua", "-lang", "english.toml").
			ExitsWith(1).WritesStderrContaining("boom"),
		ThatMaxlang("-mex-script", "missing.lua", "-lang", "english.toml").
			ExitsWith(1).WritesStderrContaining("missing.lua"),
		ThatMaxlang("-mex-script", "hello.lua", "-lang", "missing.toml").
			ExitsWith(2).WritesStderrContaining("missing.toml: open failed"),
		ThatMaxlang("-mex-script", "hello.lua").
			ExitsWith(2).WritesStderrContaining("-mex-script requires -lang"),
		ThatMaxlang("-mex-script", "hello.lua", "-lang", "english.toml", "x").
			ExitsWith(2).WritesStderrContaining("arguments are not allowed"),
		ThatMaxlang().
			ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}
