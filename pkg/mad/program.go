package mad

import (
	"fmt"
	"os"

	"github.com/tidwall/sjson"
	"src.maxlang.sh/pkg/cfg"
	"src.maxlang.sh/pkg/diag"
	"src.maxlang.sh/pkg/prog"
)

// Program is the converter subprogram, run with -convert-lang or
// -convert-lang-all.
type Program struct {
	convertLang    string
	convertLangAll bool
	outDir         string

	config  *string
	sysRoot *string
	json    *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.convertLang, "convert-lang", "",
		"Convert a single .MAD language source to TOML")
	fs.BoolVar(&p.convertLangAll, "convert-lang-all", false,
		"Convert every .MAD language source in the language directory")
	fs.StringVar(&p.outDir, "out-dir", "",
		"Directory to write converted files to; defaults to the directory of each source")
	p.config = fs.Config()
	p.sysRoot = fs.SysRoot()
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.convertLang == "" && !p.convertLangAll {
		return prog.NextProgram()
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -convert-lang or -convert-lang-all")
	}
	if p.convertLang != "" && p.convertLangAll {
		return prog.BadUsage("-convert-lang and -convert-lang-all are mutually exclusive")
	}
	c, err := cfg.Load(*p.config)
	if err != nil {
		return err
	}
	opts := Options{Limits: Limits(c.Limits), OutDir: p.outDir}
	if p.convertLang != "" {
		return p.convertOne(fds, opts)
	}
	return p.convertAll(fds, c.LangDir(*p.sysRoot), opts)
}

func (p *Program) convertOne(fds [3]*os.File, opts Options) error {
	res, err := Convert(p.convertLang, opts)
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	if *p.json {
		fmt.Fprintln(fds[1], fileReport(res.Input, res, nil))
	} else {
		fmt.Fprintf(fds[1], "Converted %s -> %s (%d strings)\n", res.Input, res.Output, res.Strings)
	}
	return nil
}

func (p *Program) convertAll(fds [3]*os.File, dir string, opts Options) error {
	report := `{"converted":0,"failed":0,"files":[]}`
	seen := 0
	failed := 0
	n, err := ConvertAll(dir, opts, func(path string, res *Result, err error) {
		seen++
		if err != nil {
			failed++
			diag.ShowError(fds[2], err)
		}
		report, _ = sjson.SetRaw(report, "files.-1", fileReport(path, res, err))
	})
	if err != nil && seen == 0 {
		// The directory itself could not be read.
		diag.ShowError(fds[2], err)
		return prog.Exit(1)
	}
	if *p.json {
		report, _ = sjson.Set(report, "converted", n)
		report, _ = sjson.Set(report, "failed", failed)
		fmt.Fprintln(fds[1], report)
	} else {
		fmt.Fprintf(fds[1], "Converted %d language files\n", n)
	}
	return nil
}

func fileReport(path string, res *Result, err error) string {
	s, _ := sjson.Set("", "path", path)
	if res != nil {
		s, _ = sjson.Set(s, "output", res.Output)
		s, _ = sjson.Set(s, "strings", res.Strings)
	}
	if err != nil {
		s, _ = sjson.Set(s, "error", err.Error())
	}
	return s
}
