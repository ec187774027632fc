package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides access to flags shared by
// multiple subprograms. The shared flags are registered the first time they
// are requested, so that each is defined exactly once.
type FlagSet struct {
	*flag.FlagSet
	config   *string
	sysRoot  *string
	langFile *string
	json     *bool
}

// Config returns a pointer to the value of the -config flag.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", "",
			"Path to the INI configuration file")
		fs.config = &config
	}
	return fs.config
}

// SysRoot returns a pointer to the value of the -sys-root flag.
func (fs *FlagSet) SysRoot() *string {
	if fs.sysRoot == nil {
		var sysRoot string
		fs.StringVar(&sysRoot, "sys-root", "",
			"Root of the BBS installation; defaults to $MAXIMUS")
		fs.sysRoot = &sysRoot
	}
	return fs.sysRoot
}

// LangFile returns a pointer to the value of the -lang flag.
func (fs *FlagSet) LangFile() *string {
	if fs.langFile == nil {
		var langFile string
		fs.StringVar(&langFile, "lang", "",
			"Path to a converted .toml language file")
		fs.langFile = &langFile
	}
	return fs.langFile
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo, -version or -convert-lang-all in JSON")
		fs.json = &json
	}
	return fs.json
}
