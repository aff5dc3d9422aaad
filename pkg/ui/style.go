// Package ui contains types for styling text shown on terminals.
package ui

import (
	"strconv"
	"strings"
)

// Color is one of the 8 basic ANSI colors, or Default.
type Color uint8

// Possible colors.
const (
	Default Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

func (c Color) fgSGR() string { return strconv.Itoa(30 + int(c) - 1) }

// Style specifies how something (mostly a string) shall be displayed.
type Style struct {
	Fg         Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
	Inverse    bool
}

// SGR returns SGR sequence for the style.
func (s Style) SGR() string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Italic, "3")
	addIf(s.Underlined, "4")
	addIf(s.Inverse, "7")
	if s.Fg != Default {
		sgr = append(sgr, s.Fg.fgSGR())
	}

	return strings.Join(sgr, ";")
}

// Apply wraps text in the SGR sequence of the style and a reset sequence.
// Text is returned unchanged if the style is the zero value.
func (s Style) Apply(text string) string {
	sgr := s.SGR()
	if sgr == "" || text == "" {
		return text
	}
	return "\033[" + sgr + "m" + text + "\033[m"
}

// Merge returns a style with attributes set in either s or other. The color
// of other takes precedence.
func (s Style) Merge(other Style) Style {
	if other.Fg != Default {
		s.Fg = other.Fg
	}
	s.Bold = s.Bold || other.Bold
	s.Dim = s.Dim || other.Dim
	s.Italic = s.Italic || other.Italic
	s.Underlined = s.Underlined || other.Underlined
	s.Inverse = s.Inverse || other.Inverse
	return s
}

// StripSGR removes all SGR sequences from s.
func StripSGR(s string) string {
	if !strings.Contains(s, "\033[") {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.Index(s, "\033[")
		if i == -1 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		j := strings.IndexByte(s[i:], 'm')
		if j == -1 {
			return sb.String()
		}
		s = s[i+j+1:]
	}
}
