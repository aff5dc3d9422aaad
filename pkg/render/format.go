package render

import (
	"fmt"
	"strings"
)

// Format is an output format of the renderer.
type Format int

// Supported formats.
const (
	Plain Format = iota
	HTML
	Markdown
)

var formatNames = []string{
	Plain:    "plain",
	HTML:     "html",
	Markdown: "markdown",
}

var formatExts = []string{
	Plain:    ".txt",
	HTML:     ".html",
	Markdown: ".md",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension for files in format f, including the dot.
func (f Format) Ext() string {
	if f < 0 || int(f) >= len(formatExts) {
		return ""
	}
	return formatExts[f]
}

// ParseFormat parses the name of a format, ignoring case. It returns a
// *UnsupportedFormatError if name is not one of "plain", "html" and
// "markdown".
func ParseFormat(name string) (Format, error) {
	lower := strings.ToLower(name)
	for f, fname := range formatNames {
		if lower == fname {
			return Format(f), nil
		}
	}
	return 0, &UnsupportedFormatError{name}
}

// UnsupportedFormatError is returned when a format is not supported.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (want plain, html or markdown)", e.Format)
}
