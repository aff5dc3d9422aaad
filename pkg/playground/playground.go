// Package playground converts playground source files into Markdown.
//
// A playground page is source code interleaved with markup comments. Lines
// starting with "//:" and blocks between "/*:" and "*/" hold Markdown prose;
// everything else is code. The code is never parsed.
package playground

import (
	"strings"

	"src.lessondeck.sh/pkg/md"
)

// Special link destinations referring to the adjacent pages of a deck.
const (
	Next     = "@next"
	Previous = "@previous"
)

// IsCrossReference reports whether dest is one of the special destinations
// Next and Previous.
func IsCrossReference(dest string) bool {
	return dest == Next || dest == Previous
}

const (
	lineMarkup       = "//:"
	blockMarkupStart = "/*:"
	blockMarkupEnd   = "*/"
)

type chunk struct {
	prose bool
	lines []string
}

// ToMarkdown converts the playground source body into Markdown. Markup
// comments become prose with the markers removed; every other run of
// non-blank lines becomes a fenced code block with lang as its info string.
func ToMarkdown(body, lang string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")

	var chunks []chunk
	add := func(prose bool, line string) {
		if n := len(chunks); n > 0 && chunks[n-1].prose == prose {
			chunks[n-1].lines = append(chunks[n-1].lines, line)
			return
		}
		chunks = append(chunks, chunk{prose, []string{line}})
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, lineMarkup):
			add(true, trimMarkupSpace(trimmed[len(lineMarkup):]))
		case strings.HasPrefix(trimmed, blockMarkupStart):
			rest := strings.TrimLeft(trimmed[len(blockMarkupStart):], " \t")
			for {
				if before, after, found := strings.Cut(rest, blockMarkupEnd); found {
					if strings.TrimSpace(before) != "" {
						add(true, before)
					}
					if strings.TrimSpace(after) != "" {
						add(false, after)
					}
					break
				}
				if strings.TrimSpace(rest) != "" || len(chunks) > 0 && chunks[len(chunks)-1].prose {
					add(true, rest)
				}
				if i+1 == len(lines) {
					break
				}
				i++
				rest = lines[i]
			}
		default:
			add(false, line)
		}
	}

	var parts []string
	for _, c := range chunks {
		var text string
		if c.prose {
			text = strings.TrimRight(strings.Join(c.lines, "\n"), " \t\n")
			text = strings.TrimLeft(text, "\n")
		} else {
			text = fence(trimBlankLines(c.lines), lang)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// A single space after "//:" separates the marker from the text.
func trimMarkupSpace(s string) string {
	return strings.TrimPrefix(s, " ")
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// fence wraps code in a fenced code block. The fence is longer than any run
// of backquotes in the code.
func fence(lines []string, lang string) string {
	if len(lines) == 0 {
		return ""
	}
	longest := 0
	for _, line := range lines {
		run := 0
		for _, r := range line {
			if r == '`' {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	f := strings.Repeat("`", max(3, longest+1))
	return f + lang + "\n" + strings.Join(lines, "\n") + "\n" + f
}

// Links returns the destinations of all links in the Markdown text, in the
// order they appear.
func Links(markdown string) []string {
	var c linkCollector
	md.Render(markdown, &c)
	return c.dests
}

type linkCollector struct{ dests []string }

func (c *linkCollector) Do(op md.Op) {
	for _, inline := range op.Content {
		if inline.Type == md.OpLinkStart || inline.Type == md.OpAutolink {
			c.dests = append(c.dests, inline.Dest)
		}
	}
}
