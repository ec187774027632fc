// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.maxlang.sh/pkg/buildinfo.Var=value" to "go build" or
// "go get".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/tidwall/sjson"
	"src.maxlang.sh/pkg/prog"
)

// Version identifies the version of maxlang. On development commits, it
// identifies the next release.
const Version = "v0.4.0"

// VersionSuffix is appended to Version to build the full version string. It
// can be overridden when building.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. It can be
// overridden when building.
var Reproducible = "false"

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "Show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "Show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	fullVersion := Version + VersionSuffix
	switch {
	case p.buildinfo:
		if *p.json {
			s, _ := sjson.Set("", "version", fullVersion)
			s, _ = sjson.Set(s, "goversion", runtime.Version())
			s, _ = sjson.SetRaw(s, "reproducible", Reproducible)
			fmt.Fprintln(fds[1], s)
		} else {
			fmt.Fprintln(fds[1], "Version:", fullVersion)
			fmt.Fprintln(fds[1], "Go version:", runtime.Version())
			fmt.Fprintln(fds[1], "Reproducible build:", Reproducible)
		}
	case p.version:
		if *p.json {
			s, _ := sjson.Set("", "version", fullVersion)
			fmt.Fprintln(fds[1], s)
		} else {
			fmt.Fprintln(fds[1], fullVersion)
		}
	default:
		return prog.NextProgram()
	}
	return nil
}
