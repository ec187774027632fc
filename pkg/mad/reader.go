package mad

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"src.maxlang.sh/pkg/diag"
)

// Line is a logical line of a .MAD source: a directive, a heap introducer or
// a complete string definition assembled from one or more physical lines.
type Line struct {
	File    string
	Number  int
	Content string
}

func (l Line) context() *diag.Context {
	return diag.LineContext(l.File, l.Number, l.Content)
}

// contextOf is like context, but the culprit is the first occurrence of sub
// in the line if there is one.
func (l Line) contextOf(sub string) *diag.Context {
	i := strings.Index(l.Content, sub)
	if sub == "" || i < 0 {
		return l.context()
	}
	return diag.NewContext(l.File, l.Number, l.Content, diag.Ranging{From: i, To: i + len(sub)})
}

const maxLineSize = 1 << 20

// frame is an open source file on the include stack.
type frame struct {
	file    *os.File
	name    string
	scanner *bufio.Scanner
	number  int

	peeked  string
	hasPeek bool
}

func openFrame(path, name string) (*frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &frame{file: file, name: name, scanner: scanner}, nil
}

// peek returns the next physical line without consuming it.
func (f *frame) peek() (string, bool, error) {
	if f.hasPeek {
		return f.peeked, true, nil
	}
	if !f.scanner.Scan() {
		return "", false, f.scanner.Err()
	}
	f.peeked, f.hasPeek = f.scanner.Text(), true
	return f.peeked, true, nil
}

// read consumes and returns the next physical line.
func (f *frame) read() (string, bool, error) {
	text, ok, err := f.peek()
	if ok {
		f.hasPeek = false
		f.number++
	}
	return text, ok, err
}

// lineReader assembles logical lines from a stack of include frames. Reading
// always happens from the innermost frame; a frame is popped and closed when
// it reaches EOF.
type lineReader struct {
	stack    []*frame
	maxDepth int
	rootDir  string
}

func newLineReader(path string, maxDepth int) (*lineReader, error) {
	f, err := openFrame(path, path)
	if err != nil {
		return nil, &Error{Kind: OpenFailed, Message: "cannot open " + path, Err: err}
	}
	return &lineReader{[]*frame{f}, maxDepth, filepath.Dir(path)}, nil
}

// close closes all open frames. It is safe to call multiple times.
func (r *lineReader) close() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		r.stack[i].file.Close()
	}
	r.stack = nil
}

func (r *lineReader) pop() {
	top := r.stack[len(r.stack)-1]
	top.file.Close()
	r.stack = r.stack[:len(r.stack)-1]
}

// include pushes a new frame for target. The target is resolved relative to
// the directory of the root file first, then as given.
func (r *lineReader) include(target string, at Line) error {
	if len(r.stack) >= r.maxDepth {
		return newError(IncludeTooDeep, at.contextOf(target),
			"cannot include %s: maximum nesting depth %d reached", target, r.maxDepth)
	}
	var candidates []string
	if !filepath.IsAbs(target) {
		candidates = append(candidates, filepath.Join(r.rootDir, target))
	}
	candidates = append(candidates, target)
	for _, path := range candidates {
		f, err := openFrame(path, target)
		if err == nil {
			r.stack = append(r.stack, f)
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return &Error{Kind: OpenFailed, Message: "cannot open " + path,
				Context: at.contextOf(target), Err: err}
		}
	}
	return newError(IncludeNotFound, at.contextOf(target), "cannot find %s", target)
}

// next returns the next logical line. It returns false when all frames are
// exhausted.
func (r *lineReader) next() (Line, bool, error) {
	for len(r.stack) > 0 {
		f := r.stack[len(r.stack)-1]
		text, ok, err := f.read()
		if err != nil {
			return Line{}, false, r.readError(f, err)
		}
		if !ok {
			r.pop()
			continue
		}
		text = trimLine(text)
		if text == "" || text[0] == ';' {
			continue
		}
		line := Line{f.name, f.number, text}
		if startsSection(text) {
			return line, true, nil
		}
		for !terminated(line.Content) {
			next, ok, err := f.peek()
			if err != nil {
				return Line{}, false, r.readError(f, err)
			}
			if !ok {
				break
			}
			next = trimLine(next)
			if next == "" || startsSection(next) {
				break
			}
			f.read()
			if next[0] == ';' {
				continue
			}
			line.Content += " " + next
		}
		return line, true, nil
	}
	return Line{}, false, nil
}

func (r *lineReader) readError(f *frame, err error) error {
	return &Error{Kind: ReadFailed, Message: "cannot read " + f.name,
		Context: diag.LineContext(f.name, f.number+1, ""), Err: err}
}

// trimLine strips surrounding whitespace, including the DOS end-of-file
// marker.
func trimLine(s string) string {
	return strings.Trim(s, " \t\r\n\x1a")
}

// startsSection reports whether a physical line is a directive or a heap
// introducer, which always stands on its own.
func startsSection(s string) bool {
	return s[0] == '#' || s[0] == ':' || s[0] == '='
}

// terminated reports whether s contains a ';' outside double quotes.
func terminated(s string) bool {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return true
			}
		}
	}
	return false
}
