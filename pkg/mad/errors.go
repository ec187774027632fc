package mad

import (
	"fmt"

	"src.maxlang.sh/pkg/diag"
)

// ErrorKind classifies a conversion failure. It implements error so that
// errors.Is(err, mad.NoHeap) can be used to test for a kind.
type ErrorKind int

// Error kinds.
const (
	OpenFailed ErrorKind = iota + 1
	ReadFailed
	OutputFailed
	IncludeTooDeep
	IncludeNotFound
	NoHeap
	HeapOverflow
	TooManyHeaps
	TooManyDefines
)

var kindNames = [...]string{
	OpenFailed:      "open failed",
	ReadFailed:      "read failed",
	OutputFailed:    "output failed",
	IncludeTooDeep:  "include too deep",
	IncludeNotFound: "include not found",
	NoHeap:          "no heap",
	HeapOverflow:    "heap overflow",
	TooManyHeaps:    "too many heaps",
	TooManyDefines:  "too many defines",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("error kind %d", int(k))
	}
	return kindNames[k]
}

func (k ErrorKind) Error() string { return k.String() }

// Error is the error returned by the converter.
type Error struct {
	Kind    ErrorKind
	Message string
	// Context is the source line the error is attached to. It is nil for
	// errors not tied to a line, like failing to write the output.
	Context *diag.Context
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Context != nil {
		return fmt.Sprintf("%s: %s: %s", e.Context, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Show shows the error with the culprit line highlighted.
func (e *Error) Show(indent string) string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	header := fmt.Sprintf("%s: \033[31;1m%s\033[m", e.Kind, msg)
	if e.Context == nil {
		return indent + header
	}
	return indent + header + "\n" + indent + "  " + e.Context.Show(indent+"  ")
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, ctx *diag.Context, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Context: ctx}
}
