// Package lang implements the language store, an index from dotted keys
// ("heap.symbol") to the strings of a converted language file.
//
// A Store is immutable once loaded; lookups may be done concurrently.
package lang

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"src.maxlang.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[lang] ")

// Tables of a language file that are not heaps.
const (
	metaTable      = "meta"
	legacyMapTable = "_legacy_map"
	userHeapKey    = "_user_heap"
)

// MexFlag is the flag marking strings exported to script runtimes.
const MexFlag = "mex"

// Entry is a string of a language file. Texts are in MCI escape form, as
// written by the converter.
type Entry struct {
	Text   string
	RIP    string
	HasRIP bool
	Flags  []string
}

// HasFlag reports whether the entry carries the given flag.
func (e Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

// Store is a loaded language.
type Store struct {
	entries map[string]Entry
	keys    []string
}

// New builds a Store from entries keyed by dotted key. It is used to
// rebuild a Store from a cache.
func New(entries map[string]Entry) *Store {
	s := &Store{entries: make(map[string]Entry, len(entries))}
	for key, e := range entries {
		s.add(key, e)
	}
	sort.Strings(s.keys)
	return s
}

func (s *Store) add(key string, e Entry) {
	lower := strings.ToLower(key)
	if _, exists := s.entries[lower]; !exists {
		s.keys = append(s.keys, key)
	}
	s.entries[lower] = e
}

// Open loads a converted language file.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: OpenFailed, Path: path, Err: err}
	}
	s, err := Parse(data)
	if err != nil {
		return nil, &Error{Kind: ParseFailed, Path: path, Err: err}
	}
	logger.Printf("loaded %s: %d strings", path, s.Len())
	return s, nil
}

// Parse builds a Store from the content of a language file.
func Parse(data []byte) (*Store, error) {
	var doc map[string]any
	if _, err := toml.Decode(normalizeEscapes(string(data)), &doc); err != nil {
		return nil, err
	}
	s := &Store{entries: make(map[string]Entry)}
	for heap, v := range doc {
		if heap == metaTable || heap == legacyMapTable {
			continue
		}
		table, ok := v.(map[string]any)
		if !ok {
			logger.Printf("ignoring top-level key %s", heap)
			continue
		}
		for symbol, value := range table {
			if symbol == userHeapKey {
				continue
			}
			e, ok := entryOf(value)
			if !ok {
				logger.Printf("ignoring %s.%s of type %T", heap, symbol, value)
				continue
			}
			s.add(heap+"."+symbol, e)
		}
	}
	sort.Strings(s.keys)
	return s, nil
}

// entryOf converts a decoded value, either a string or an inline table with
// text, flags and rip fields, to an Entry.
func entryOf(v any) (Entry, bool) {
	switch v := v.(type) {
	case string:
		return Entry{Text: mciEscape(v)}, true
	case map[string]any:
		var e Entry
		if text, ok := v["text"].(string); ok {
			e.Text = mciEscape(text)
		}
		if rip, ok := v["rip"].(string); ok {
			e.RIP, e.HasRIP = mciEscape(rip), true
		}
		if flags, ok := v["flags"].([]any); ok {
			for _, f := range flags {
				if f, ok := f.(string); ok {
					e.Flags = append(e.Flags, f)
				}
			}
		}
		return e, true
	}
	return Entry{}, false
}

// Get returns the text of the string with the given key, or "" if there is
// no such string. Keys are compared case-insensitively.
func (s *Store) Get(key string) string {
	return s.entries[strings.ToLower(key)].Text
}

// GetRIP returns the RIP variant of the string with the given key, or "" if
// the string doesn't exist or has no RIP variant. It never falls back to the
// text.
func (s *Store) GetRIP(key string) string {
	return s.entries[strings.ToLower(key)].RIP
}

// Lookup returns the entry with the given key.
func (s *Store) Lookup(key string) (Entry, bool) {
	e, ok := s.entries[strings.ToLower(key)]
	return e, ok
}

// Keys returns all keys in sorted order, in the case they were declared with.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of strings.
func (s *Store) Len() int { return len(s.keys) }

// Mex returns the sorted keys of strings flagged for script runtimes.
func (s *Store) Mex() []string {
	var keys []string
	for _, key := range s.keys {
		if s.entries[strings.ToLower(key)].HasFlag(MexFlag) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Entries returns a copy of all entries keyed by their declared keys.
func (s *Store) Entries() map[string]Entry {
	m := make(map[string]Entry, len(s.keys))
	for _, key := range s.keys {
		m[key] = s.entries[strings.ToLower(key)]
	}
	return m
}

// Close releases the store. Lookups on a closed store return "". Close must
// not be called concurrently with lookups.
func (s *Store) Close() {
	s.entries = nil
	s.keys = nil
}
