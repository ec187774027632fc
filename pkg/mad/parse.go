package mad

import (
	"strings"

	"src.maxlang.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[mad] ")

// Document is the parsed form of a .MAD source and everything it includes.
type Document struct {
	Heaps []*Heap
}

// Heap is a named group of strings.
type Heap struct {
	// Name is the name as first declared; uniqueness is case-insensitive.
	Name string
	// User is set for heaps introduced with '='. All their strings are
	// exported to script runtimes.
	User    bool
	Strings []*String
}

// String is a string definition with its body already converted to MCI.
type String struct {
	Symbol string
	Text   string
	RIP    string
	HasRIP bool
	Mex    bool
	// ID is the legacy numeric ID, dense and monotonic from zero across the
	// whole document.
	ID int
}

// NumStrings returns the number of strings in all heaps.
func (d *Document) NumStrings() int {
	n := 0
	for _, h := range d.Heaps {
		n += len(h.Strings)
	}
	return n
}

type stringFlags struct {
	mex, rip, skip bool
}

type parser struct {
	limits    Limits
	reader    *lineReader
	doc       *Document
	heapIndex map[string]*Heap
	cur       *Heap
	macros    map[string]string
	nextID    int
}

// Parse parses a root .MAD file, following its includes. All files opened
// are closed before Parse returns.
func Parse(path string, limits Limits) (*Document, error) {
	limits = limits.withDefaults()
	reader, err := newLineReader(path, limits.MaxIncludeDepth)
	if err != nil {
		return nil, err
	}
	defer reader.close()

	p := &parser{
		limits:    limits,
		reader:    reader,
		doc:       &Document{},
		heapIndex: make(map[string]*Heap),
		macros:    make(map[string]string),
	}
	for {
		line, ok, err := reader.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}
	return p.doc, nil
}

func (p *parser) parseLine(line Line) error {
	switch line.Content[0] {
	case '#':
		return p.parseDirective(line)
	case ':':
		return p.openHeap(line, false)
	case '=':
		return p.openHeap(line, true)
	default:
		return p.parseString(line)
	}
}

func (p *parser) parseDirective(line Line) error {
	rest := strings.TrimLeft(line.Content[1:], " \t")
	name, rest := cutToken(rest)
	switch strings.ToLower(name) {
	case "define":
		return p.define(line, rest)
	case "include":
		return p.reader.include(includeTarget(rest), line)
	default:
		logger.Printf("%s:%d: ignoring directive #%s", line.File, line.Number, name)
		return nil
	}
}

func (p *parser) define(line Line, rest string) error {
	name, replacement := cutToken(rest)
	if name == "" {
		logger.Printf("%s:%d: #define without a name", line.File, line.Number)
		return nil
	}
	if _, exists := p.macros[name]; !exists && len(p.macros) >= p.limits.MaxDefines {
		return newError(TooManyDefines, line.context(),
			"more than %d macros defined", p.limits.MaxDefines)
	}
	p.macros[name] = p.expandMacros(replacement)
	return nil
}

// expandMacros replaces every identifier outside double quotes that names a
// macro with its replacement. It does not rescan the replacement.
func (p *parser) expandMacros(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '"':
			j := skipQuoted(s, i)
			sb.WriteString(s[i:j])
			i = j
		case isIdentChar(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			if repl, ok := p.macros[s[i:j]]; ok {
				sb.WriteString(repl)
			} else {
				sb.WriteString(s[i:j])
			}
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func includeTarget(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[0] {
	case '"', '<':
		end := byte('"')
		if s[0] == '<' {
			end = '>'
		}
		if i := strings.IndexByte(s[1:], end); i >= 0 {
			return s[1 : i+1]
		}
		return s[1:]
	}
	target, _ := cutToken(s)
	return target
}

func (p *parser) openHeap(line Line, user bool) error {
	name, _ := cutToken(strings.TrimSpace(line.Content[1:]))
	if name == "" {
		logger.Printf("%s:%d: heap introducer without a name", line.File, line.Number)
		return nil
	}
	key := strings.ToLower(name)
	if h, ok := p.heapIndex[key]; ok {
		h.User = h.User || user
		p.cur = h
		return nil
	}
	if len(p.doc.Heaps) >= p.limits.MaxHeaps {
		return newError(TooManyHeaps, line.context(),
			"more than %d heaps declared", p.limits.MaxHeaps)
	}
	h := &Heap{Name: name, User: user}
	p.doc.Heaps = append(p.doc.Heaps, h)
	p.heapIndex[key] = h
	p.cur = h
	return nil
}

func (p *parser) parseString(line Line) error {
	s := line.Content
	i := 0
	var flags stringFlags
	for {
		i = skipSpace(s, i)
		if i >= len(s) || s[i] != '@' {
			break
		}
		j := i
		for j < len(s) && !isSpace(s[j]) {
			j++
		}
		switch strings.ToUpper(s[i+1 : j]) {
		case "MEX":
			flags.mex = true
		case "RIP", "ALT":
			flags.rip = true
		case "UNIX":
			// Accepted on this platform.
		case "DOS", "OS2", "NT":
			flags.skip = true
		default:
			logger.Printf("%s:%d: skipping unknown flag %s", line.File, line.Number, s[i:j])
		}
		i = j
	}

	start := i
	for i < len(s) && isSymbolChar(s[i]) {
		i++
	}
	symbol := strings.TrimRight(s[start:i], "$#")
	i = skipSpace(s, i)
	if symbol == "" || i >= len(s) || s[i] != '=' {
		logger.Printf("%s:%d: skipping malformed string definition", line.File, line.Number)
		return nil
	}
	body := p.parseValues(s[i+1:], true)

	if flags.skip {
		logger.Printf("%s:%d: skipping %s for another platform", line.File, line.Number, symbol)
		return nil
	}
	if p.cur == nil {
		return newError(NoHeap, line.context(),
			"string %s defined before any heap section", symbol)
	}
	text := ConvertBody(body)
	mex := flags.mex || p.cur.User

	if flags.rip {
		if prior := p.cur.find(symbol); prior != nil {
			prior.RIP, prior.HasRIP = text, true
			prior.Mex = prior.Mex || mex
			return nil
		}
		return p.add(line, &String{Symbol: symbol, RIP: text, HasRIP: true, Mex: mex})
	}
	if p.cur.find(symbol) != nil {
		logger.Printf("%s:%d: ignoring duplicate symbol %s in heap %s",
			line.File, line.Number, symbol, p.cur.Name)
		return nil
	}
	return p.add(line, &String{Symbol: symbol, Text: text, Mex: mex})
}

func (p *parser) add(line Line, s *String) error {
	if len(p.cur.Strings) >= p.limits.MaxHeapStrings {
		return newError(HeapOverflow, line.context(),
			"heap %s has more than %d strings", p.cur.Name, p.limits.MaxHeapStrings)
	}
	s.ID = p.nextID
	p.nextID++
	p.cur.Strings = append(p.cur.Strings, s)
	return nil
}

// find returns the most recent string in the heap with the given symbol,
// compared case-insensitively.
func (h *Heap) find(symbol string) *String {
	for i := len(h.Strings) - 1; i >= 0; i-- {
		if strings.EqualFold(h.Strings[i].Symbol, symbol) {
			return h.Strings[i]
		}
	}
	return nil
}

// parseValues concatenates the values of a string definition up to the
// terminating ';'. Quoted literals contribute their content with backslash
// escapes intact. Bare tokens naming a macro are replaced by the values in
// the macro's replacement when expand is true; other bare tokens are copied
// literally.
func (p *parser) parseValues(s string, expand bool) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ';':
			return sb.String()
		case isSpace(c):
			i++
		case c == '"':
			j := skipQuoted(s, i)
			end := j
			if end > i+1 && s[end-1] == '"' {
				end--
			}
			sb.WriteString(s[i+1 : end])
			i = j
		default:
			j := i
			for j < len(s) && !isSpace(s[j]) && s[j] != ';' && s[j] != '"' {
				j++
			}
			token := s[i:j]
			if repl, ok := p.macros[token]; ok && expand {
				sb.WriteString(p.parseValues(repl, false))
			} else {
				sb.WriteString(token)
			}
			i = j
		}
	}
	return sb.String()
}

// skipQuoted returns the index just past the quoted literal starting at
// s[i], or len(s) if it is unterminated.
func skipQuoted(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

func cutToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i == -1 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

func isSymbolChar(c byte) bool {
	return isIdentChar(c) || c == '-' || c == '\'' || c == '$' || c == '#'
}
