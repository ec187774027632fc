// Package sys provides terminal utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the size cannot be determined.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// ScreenSize returns the size of the terminal referenced by file, or the
// fallback size if file is not a terminal or its size is unknown.
func ScreenSize(file *os.File, fallbackRow, fallbackCol int) (row, col int) {
	if !IsATTY(file) {
		return fallbackRow, fallbackCol
	}
	row, col = winSize(file)
	if row <= 0 || col <= 0 {
		return fallbackRow, fallbackCol
	}
	return row, col
}
