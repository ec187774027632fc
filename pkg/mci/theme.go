package mci

import "sync"

// The theme table maps two-letter lowercase aliases to pipe color codes. It
// is shared by all interpreters.
var (
	themeMu sync.RWMutex
	theme   = DefaultTheme()
)

// DefaultTheme returns the builtin theme.
func DefaultTheme() map[string]string {
	return map[string]string{
		"tx": "|07",    // text
		"hi": "|15",    // highlight
		"pr": "|14",    // prompt
		"in": "|15|17", // input field
		"ti": "|11",    // title
		"he": "|03",    // help
		"er": "|12",    // error
		"wn": "|14",    // warning
		"ok": "|10",    // success
		"dm": "|08",    // dim
		"bd": "|09",    // border
	}
}

// SetTheme replaces the theme table. It must not be called while an
// expansion is in progress on another goroutine.
func SetTheme(t map[string]string) {
	m := make(map[string]string, len(t))
	for k, v := range t {
		m[k] = v
	}
	themeMu.Lock()
	defer themeMu.Unlock()
	theme = m
}

// Theme returns a copy of the theme table.
func Theme() map[string]string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	m := make(map[string]string, len(theme))
	for k, v := range theme {
		m[k] = v
	}
	return m
}

// LookupTheme returns the value of a theme alias.
func LookupTheme(code string) (string, bool) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	v, ok := theme[code]
	return v, ok
}
