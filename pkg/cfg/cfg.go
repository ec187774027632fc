// Package cfg loads the INI configuration of maxlang.
package cfg

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

//go:embed default.ini
var defaultConfig []byte

// Config is the configuration of maxlang.
type Config struct {
	Paths struct {
		SysRoot string `ini:"SysRoot"`
		LangDir string `ini:"LangDir"`
		Cache   string `ini:"Cache"`
		Profile string `ini:"Profile"`
	} `ini:"Paths"`
	Limits  Limits `ini:"Limits"`
	Preview struct {
		Rows int `ini:"Rows"`
		Cols int `ini:"Cols"`
	} `ini:"Preview"`

	// File is the path of the user file, or "" if only the defaults were
	// loaded.
	File string `ini:"-"`
}

// Limits mirrors the converter limits. It is convertible to mad.Limits.
type Limits struct {
	MaxIncludeDepth int `ini:"MaxIncludeDepth"`
	MaxHeaps        int `ini:"MaxHeaps"`
	MaxHeapStrings  int `ini:"MaxHeapStrings"`
	MaxDefines      int `ini:"MaxDefines"`
}

var loadOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	AllowShadows:            false,
}

// Load loads the configuration from the default source layered with the
// given file. An empty path loads only the defaults. A path that doesn't
// exist is an error.
func Load(path string) (*Config, error) {
	sources := []any{}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("cannot load config: %w", err)
		}
		sources = append(sources, path)
	}
	f, err := ini.LoadSources(loadOptions, defaultConfig, sources...)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	var c Config
	if err := f.MapTo(&c); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	c.File = path
	return &c, nil
}

// SysRoot resolves the system root. The flag value takes precedence over the
// SysRoot key, which takes precedence over $MAXIMUS. The current directory is
// the fallback.
func (c *Config) SysRoot(flag string) string {
	switch {
	case flag != "":
		return flag
	case c.Paths.SysRoot != "":
		return c.Paths.SysRoot
	case os.Getenv("MAXIMUS") != "":
		return os.Getenv("MAXIMUS")
	}
	return "."
}

// LangDir returns the directory of .MAD sources under the resolved system
// root.
func (c *Config) LangDir(sysRootFlag string) string {
	dir := c.Paths.LangDir
	if dir == "" {
		dir = filepath.Join("etc", "lang")
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.SysRoot(sysRootFlag), dir)
}
