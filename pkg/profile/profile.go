// Package profile loads preview profiles: YAML files with a theme table and
// the mock data that info codes and positional parameters expand to.
//
// A profile looks like:
//
//	theme:
//	  hi: "|15"
//	  er: "|12|16"
//	mock:
//	  system_name: My BBS
//	  params: [Anytown, "35"]
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"src.maxlang.sh/pkg/mci"
)

// Profile is a preview profile.
type Profile struct {
	// Theme replaces the builtin theme if not empty.
	Theme map[string]string `yaml:"theme"`
	// Mock is layered over mci.DefaultMock.
	Mock mci.Mock `yaml:"mock"`
}

// Default returns the profile used when none is given.
func Default() *Profile {
	return &Profile{Mock: *mci.DefaultMock()}
}

// Load reads a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses the content of a profile file. Fields missing from the mock
// section keep their default values.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("cannot parse profile: %w", err)
	}
	for code := range p.Theme {
		if !isAlias(code) {
			return nil, fmt.Errorf("theme alias %q is not two lowercase letters", code)
		}
	}
	return p, nil
}

func isAlias(code string) bool {
	return len(code) == 2 &&
		'a' <= code[0] && code[0] <= 'z' && 'a' <= code[1] && code[1] <= 'z'
}

// Apply installs the theme of the profile, if it has one.
func (p *Profile) Apply() {
	if len(p.Theme) > 0 {
		mci.SetTheme(p.Theme)
	}
}
