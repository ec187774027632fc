// Package mad converts legacy .MAD language sources into TOML language files.
//
// A conversion parses the root source and its includes into heaps of
// strings, rewrites every string body from escaped AVATAR and printf text
// into MCI codes, renders the result as TOML, merges an optional
// delta_<name>.toml overlay and writes <name>.toml in one step.
package mad

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls a conversion.
type Options struct {
	Limits Limits
	// OutDir is the directory the output is written to. If empty, the output
	// is written next to the source.
	OutDir string
}

// Result describes a successful conversion.
type Result struct {
	Input   string
	Output  string
	Heaps   int
	Strings int
	// Delta is set if an overlay was merged.
	Delta bool
}

// LangName returns the language name of a source path, which is its base name
// without extension.
func LangName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Convert converts a root .MAD file into exactly one .toml file. The output
// file is only written once everything else has succeeded.
func Convert(path string, opts Options) (*Result, error) {
	doc, err := Parse(path, opts.Limits)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	name := LangName(path)
	res := &Result{Input: path, Heaps: len(doc.Heaps), Strings: doc.NumStrings()}

	out := Emit(doc, name, filepath.Base(path))
	deltaPath := filepath.Join(dir, DeltaFileName(name))
	delta, err := os.ReadFile(deltaPath)
	switch {
	case err == nil:
		out = ApplyDelta(out, delta)
		res.Delta = true
	case errors.Is(err, fs.ErrNotExist):
		// No overlay.
	default:
		return nil, &Error{Kind: ReadFailed, Message: "cannot read " + deltaPath, Err: err}
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = dir
	}
	res.Output = filepath.Join(outDir, name+".toml")
	if err := writeFileAtomic(res.Output, out); err != nil {
		return nil, &Error{Kind: OutputFailed, Message: "cannot write " + res.Output, Err: err}
	}
	logger.Printf("converted %s to %s: %d heaps, %d strings",
		path, res.Output, res.Heaps, res.Strings)
	return res, nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}

// ConvertAll converts every *.mad file in dir, in lexical order. The onFile
// callback, if not nil, is called after each file with the result or the
// error. A failure does not stop the batch; ConvertAll returns the number of
// files converted and the first error encountered.
func ConvertAll(dir string, opts Options, onFile func(path string, res *Result, err error)) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, &Error{Kind: OpenFailed, Message: "cannot read directory " + dir, Err: err}
	}
	converted := 0
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mad") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		res, err := Convert(path, opts)
		if onFile != nil {
			onFile(path, res, err)
		}
		if err != nil {
			logger.Printf("failed to convert %s: %v", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		converted++
	}
	return converted, firstErr
}
