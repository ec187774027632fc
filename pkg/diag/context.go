// Package diag contains building blocks for formatting diagnostic messages
// that point into source files.
package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text within one line of a source file. It is attached
// to errors that can be associated with a part of the source, like a malformed
// directive or a string defined outside any heap.
type Context struct {
	Name string
	// Line is the 1-based line number of Source within the file.
	Line   int
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name string, line int, source string, r Ranger) *Context {
	return &Context{name, line, source, r.Range()}
}

// LineContext creates a Context whose culprit is the whole of source.
func LineContext(name string, line int, source string) *Context {
	return &Context{name, line, source, Ranging{0, len(source)}}
}

// Variables controlling the style of the culprit.
var (
	culpritLineBegin   = "\033[1;4m"
	culpritLineEnd     = "\033[m"
	culpritPlaceHolder = "^"
)

// String returns the position in the form "name:line".
func (c *Context) String() string {
	return fmt.Sprintf("%s:%d", c.Name, c.Line)
}

// Show shows the Context, with the position on the first line and the
// relevant source on the second.
func (c *Context) Show(sourceIndent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s, line %d:\n%s%s",
		c.Name, c.Line, sourceIndent, c.relevantSource())
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource() string {
	var sb strings.Builder
	sb.WriteString(c.Source[:c.From])
	culprit := c.Source[c.From:c.To]
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	sb.WriteString(culpritLineBegin)
	sb.WriteString(culprit)
	sb.WriteString(culpritLineEnd)
	sb.WriteString(c.Source[c.To:])
	return sb.String()
}
