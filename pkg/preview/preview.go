// Package preview implements the -render-lang and -render-mci subprograms,
// which show how a language string or a raw MCI string would look on a
// caller's screen.
package preview

import (
	"fmt"
	"os"

	"src.maxlang.sh/pkg/cfg"
	"src.maxlang.sh/pkg/lang"
	"src.maxlang.sh/pkg/langdb"
	"src.maxlang.sh/pkg/logutil"
	"src.maxlang.sh/pkg/mci"
	"src.maxlang.sh/pkg/profile"
	"src.maxlang.sh/pkg/prog"
	"src.maxlang.sh/pkg/sys"
	"src.maxlang.sh/pkg/vscreen"
)

var logger = logutil.GetLogger("[preview] ")

// Program is the preview subprogram.
type Program struct {
	renderLang string
	renderMCI  string
	rip        bool
	rows, cols int
	color      bool
	profile    string

	config   *string
	langFile *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.renderLang, "render-lang", "",
		"Render the string with the given key from the -lang file")
	fs.StringVar(&p.renderMCI, "render-mci", "",
		"Render the given MCI string")
	fs.BoolVar(&p.rip, "rip", false,
		"Render the RIP alternate of the string given to -render-lang")
	fs.IntVar(&p.rows, "rows", 0,
		"Number of screen rows; defaults to the terminal or configured size")
	fs.IntVar(&p.cols, "cols", 0,
		"Number of screen columns; defaults to the terminal or configured size")
	fs.BoolVar(&p.color, "color", false,
		"Write ANSI colors even when stdout is not a terminal")
	fs.StringVar(&p.profile, "profile", "",
		"YAML file with the theme and mock data used when rendering")
	p.config = fs.Config()
	p.langFile = fs.LangFile()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.renderLang == "" && p.renderMCI == "" {
		return prog.NextProgram()
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -render-lang or -render-mci")
	}
	if p.renderLang != "" && p.renderMCI != "" {
		return prog.BadUsage("-render-lang and -render-mci are mutually exclusive")
	}
	if p.renderLang != "" && *p.langFile == "" {
		return prog.BadUsage("-render-lang requires -lang")
	}
	if p.rows < 0 || p.cols < 0 {
		return prog.BadUsage("-rows and -cols must not be negative")
	}
	c, err := cfg.Load(*p.config)
	if err != nil {
		return err
	}

	prof, err := p.loadProfile(c)
	if err != nil {
		return err
	}
	prof.Apply()

	text := p.renderMCI
	if p.renderLang != "" {
		store, err := openStore(*p.langFile, c.Paths.Cache)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, ok := store.Lookup(p.renderLang); !ok {
			fmt.Fprintf(fds[2], "no string with key %s\n", p.renderLang)
			return prog.Exit(1)
		}
		if p.rip {
			text = store.GetRIP(p.renderLang)
		} else {
			text = store.Get(p.renderLang)
		}
	}

	rows, cols := p.rows, p.cols
	if rows == 0 || cols == 0 {
		termRows, termCols := sys.ScreenSize(fds[1], c.Preview.Rows, c.Preview.Cols)
		if rows == 0 {
			rows = termRows
		}
		if cols == 0 {
			cols = termCols
		}
	}
	screen := mci.Render(rows, cols, text, &prof.Mock)
	fmt.Fprint(fds[1], output(screen, p.color || sys.IsATTY(fds[1])))
	return nil
}

func (p *Program) loadProfile(c *cfg.Config) (*profile.Profile, error) {
	path := p.profile
	if path == "" {
		path = c.Paths.Profile
	}
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

func output(screen *vscreen.Screen, color bool) string {
	if color {
		return screen.VTString()
	}
	return screen.String()
}

// openStore opens a language file, going through the cache database when one
// is configured. A cache that cannot be opened is skipped.
func openStore(path, cache string) (*lang.Store, error) {
	if cache == "" {
		return lang.Open(path)
	}
	db, err := langdb.Open(cache)
	if err != nil {
		logger.Printf("cannot open cache %s: %v", cache, err)
		return lang.Open(path)
	}
	defer db.Close()
	return db.Load(path)
}
