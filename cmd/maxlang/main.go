// Command maxlang converts BBS language sources to TOML and previews the
// converted strings.
package main

import (
	"os"

	"src.maxlang.sh/pkg/buildinfo"
	"src.maxlang.sh/pkg/mad"
	"src.maxlang.sh/pkg/mexport"
	"src.maxlang.sh/pkg/preview"
	"src.maxlang.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &mad.Program{},
			&preview.Program{}, &mexport.Program{})))
}
