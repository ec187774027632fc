// Package mexport exposes the strings of a language to Lua scripts, the way
// the BBS exposes mex-flagged strings to its script runtime.
package mexport

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"src.maxlang.sh/pkg/lang"
)

// Export installs the global table lang in L. It has these fields:
//
//   - get(key) returns the text of a string, or "" if there is none.
//   - get_rip(key) returns the RIP variant of a string, or "".
//   - mex is a table mapping the key of each mex-flagged string to its text.
func Export(L *lua.LState, store *lang.Store) {
	mod := L.NewTable()
	mod.RawSetString("get", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(store.Get(L.CheckString(1))))
		return 1
	}))
	mod.RawSetString("get_rip", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(store.GetRIP(L.CheckString(1))))
		return 1
	}))
	mex := L.NewTable()
	for _, key := range store.Mex() {
		mex.RawSetString(key, lua.LString(store.Get(key)))
	}
	mod.RawSetString("mex", mex)
	L.SetGlobal("lang", mod)
}

// RedirectPrint replaces the print function of L with one that writes to w.
func RedirectPrint(L *lua.LState, w io.Writer) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		args := make([]string, L.GetTop())
		for i := range args {
			args[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(w, strings.Join(args, "\t"))
		return 0
	}))
}
