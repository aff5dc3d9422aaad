// Package sys provide system utilities with the same API across OSes.
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
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// TermWidth returns the width of the terminal referenced by the given file,
// or 0 if the file is not a terminal.
func TermWidth(file *os.File) int {
	if !IsATTY(file) {
		return 0
	}
	_, col := WinSize(file)
	return max(col, 0)
}
