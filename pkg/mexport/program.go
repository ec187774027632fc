package mexport

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"src.maxlang.sh/pkg/lang"
	"src.maxlang.sh/pkg/prog"
)

// Program runs a Lua script against a language, with -mex-script.
type Program struct {
	script   string
	langFile *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.script, "mex-script", "",
		"Run a Lua script with the strings of the -lang file in the global table lang")
	p.langFile = fs.LangFile()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.script == "" {
		return prog.NextProgram()
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -mex-script")
	}
	if *p.langFile == "" {
		return prog.BadUsage("-mex-script requires -lang")
	}
	store, err := lang.Open(*p.langFile)
	if err != nil {
		return err
	}
	defer store.Close()

	L := lua.NewState()
	defer L.Close()
	RedirectPrint(L, fds[1])
	Export(L, store)
	if err := L.DoFile(p.script); err != nil {
		fmt.Fprintln(fds[2], err)
		return prog.Exit(1)
	}
	return nil
}
