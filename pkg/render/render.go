// Package render turns lesson units into text, HTML or Markdown.
//
// Rendering is pure: it does no I/O, and identical inputs always give
// identical outputs.
package render

import (
	"html"
	"regexp"
	"strings"

	"src.lessondeck.sh/pkg/deck"
	"src.lessondeck.sh/pkg/lesson"
	"src.lessondeck.sh/pkg/md"
	"src.lessondeck.sh/pkg/playground"
)

// LinkResolver resolves cross-references between adjacent units.
type LinkResolver interface {
	// Next returns the id of the unit after id, and false if there is none.
	Next(id string) (string, bool)
	// Previous returns the id of the unit before id, and false if there is
	// none.
	Previous(id string) (string, bool)
}

type deckLinks struct{ nav deck.Navigator }

// DeckLinks returns a LinkResolver that resolves cross-references between the
// units of idx.
func DeckLinks(idx *deck.Index) LinkResolver {
	return deckLinks{deck.NewNavigator(idx)}
}

func (l deckLinks) Next(id string) (string, bool) {
	u, err := l.nav.Next(id)
	return u.ID, err == nil
}

func (l deckLinks) Previous(id string) (string, bool) {
	u, err := l.nav.Previous(id)
	return u.ID, err == nil
}

// Renderer renders units.
type Renderer struct {
	// Maximum line width of plain output. Zero means no wrapping.
	Width int
	// Whether to style plain output with SGR sequences.
	Style bool
	// Resolves cross-references. If nil, all cross-references are rendered
	// as plain text.
	Links LinkResolver
}

// Render renders u in format f.
func (r Renderer) Render(u lesson.Unit, f Format) (string, error) {
	switch f {
	case Markdown:
		doc := Document(u)
		if !hasCrossReference(playground.Links(doc)) {
			return doc, nil
		}
		return r.rewriteCrossReferences(doc, u.ID, Markdown.Ext()), nil
	case HTML:
		codec := &md.HTMLCodec{ConvertLink: func(dest string) string {
			return r.resolve(dest, u.ID, HTML.Ext())
		}}
		body := md.RenderString(Document(u), codec)
		return `<article id="` + html.EscapeString(u.ID) + "\">\n" + body + "</article>\n", nil
	case Plain:
		return md.RenderString(Document(u), &md.TextCodec{Width: r.Width, Style: r.Style}), nil
	}
	return "", &UnsupportedFormatError{f.String()}
}

// Document returns the Markdown document of u: its title as a level 1
// heading, followed by its body. Bodies in a language other than Markdown
// are playground sources and are converted with playground.ToMarkdown.
func Document(u lesson.Unit) string {
	doc := "# " + escapeMarkdown(u.Title) + "\n"
	body := u.Body
	if !IsMarkdown(u.Lang) {
		body = playground.ToMarkdown(body, u.Lang)
	}
	body = strings.Trim(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if body != "" {
		doc += "\n" + body + "\n"
	}
	return doc
}

// IsMarkdown reports whether units with the language lang have Markdown
// bodies.
func IsMarkdown(lang string) bool {
	switch strings.ToLower(lang) {
	case "", "md", "markdown":
		return true
	}
	return false
}

// resolve maps a link destination to the file of the unit it refers to.
// Destinations that are not cross-references are returned unchanged, and
// cross-references that cannot be resolved map to "".
func (r Renderer) resolve(dest, id, ext string) string {
	if !playground.IsCrossReference(dest) {
		return dest
	}
	if r.Links == nil {
		return ""
	}
	var target string
	var ok bool
	if dest == playground.Next {
		target, ok = r.Links.Next(id)
	} else {
		target, ok = r.Links.Previous(id)
	}
	if !ok {
		return ""
	}
	return target + ext
}

func hasCrossReference(dests []string) bool {
	for _, dest := range dests {
		if playground.IsCrossReference(dest) {
			return true
		}
	}
	return false
}

var crossReferenceRegexp = regexp.MustCompile(`\[([^\[\]]*)\]\((@next|@previous)\)`)

// rewriteCrossReferences rewrites cross-references in Markdown text outside
// of fenced code blocks.
func (r Renderer) rewriteCrossReferences(markdown, id, ext string) string {
	lines := strings.Split(markdown, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]+" \t") == "" {
				fence = ""
			}
			continue
		}
		if f := fenceOf(trimmed); f != "" {
			fence = f
			continue
		}
		lines[i] = crossReferenceRegexp.ReplaceAllStringFunc(line, func(s string) string {
			m := crossReferenceRegexp.FindStringSubmatch(s)
			target := r.resolve(m[2], id, ext)
			if target == "" {
				return m[1]
			}
			return "[" + m[1] + "](" + target + ")"
		})
	}
	return strings.Join(lines, "\n")
}

// fenceOf returns the fence that line opens, or "" if it does not open a
// fenced code block.
func fenceOf(line string) string {
	for _, c := range []string{"`", "~"} {
		n := len(line) - len(strings.TrimLeft(line, c))
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}

var escapeMarkdown = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`).Replace
