package lang

import "fmt"

// ErrorKind classifies a failure to load a language file.
type ErrorKind int

// Error kinds.
const (
	OpenFailed ErrorKind = iota + 1
	ParseFailed
)

func (k ErrorKind) String() string {
	switch k {
	case OpenFailed:
		return "open failed"
	case ParseFailed:
		return "parse failed"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Error is returned when a language file cannot be loaded.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
