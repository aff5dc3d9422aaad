package md

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	escapeHTML = strings.NewReplacer(
		"&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;",
		// Attributes in the output always use double quotes.
	).Replace
	escapeURL = strings.NewReplacer(
		`"`, "%22", `\`, "%5C", " ", "%20", "`", "%60",
		"[", "%5B", "]", "%5D", "<", "%3C", ">", "%3E").Replace
)

// HTMLCodec converts markdown to HTML.
type HTMLCodec struct {
	strings.Builder
	// If not nil, called on the destination of every link. Returning an
	// empty string drops the link and keeps its content.
	ConvertLink func(dest string) string

	// One entry per open container; true for items of a tight list.
	tight []bool
	// One entry per open link; true if the link was dropped.
	dropped []bool
}

var tags = []string{
	OpThematicBreak: "<hr />\n",

	OpBlockquoteStart: "<blockquote>\n", OpBlockquoteEnd: "</blockquote>\n",
	OpBulletListStart: "<ul>\n", OpBulletListEnd: "</ul>\n",
	OpOrderedListEnd: "</ol>\n",
}

func (c *HTMLCodec) Do(op Op) {
	tightParagraph := op.Type == OpParagraph && c.inTightItem()
	if op.Type != OpListItemEnd && !tightParagraph {
		c.cr()
	}
	switch op.Type {
	case OpHeading:
		fmt.Fprintf(c, "<h%d>", op.Number)
		c.renderInline(op.Content)
		fmt.Fprintf(c, "</h%d>\n", op.Number)
	case OpCodeBlock:
		var attrs attrBuilder
		if op.Info != "" {
			language, _, _ := strings.Cut(op.Info, " ")
			attrs.set("class", "language-"+language)
		}
		fmt.Fprintf(c, "<pre><code%s>", &attrs)
		for _, line := range op.Lines {
			c.WriteString(escapeHTML(line))
			c.WriteByte('\n')
		}
		c.WriteString("</code></pre>\n")
	case OpParagraph:
		if tightParagraph {
			c.renderInline(op.Content)
		} else {
			c.WriteString("<p>")
			c.renderInline(op.Content)
			c.WriteString("</p>\n")
		}
	case OpBlockquoteStart:
		c.tight = append(c.tight, false)
		c.WriteString(tags[op.Type])
	case OpBulletListStart:
		c.tight = append(c.tight, op.Tight)
		c.WriteString(tags[op.Type])
	case OpOrderedListStart:
		c.tight = append(c.tight, op.Tight)
		var attrs attrBuilder
		if op.Number != 1 {
			attrs.set("start", strconv.Itoa(op.Number))
		}
		fmt.Fprintf(c, "<ol%s>\n", &attrs)
	case OpBlockquoteEnd, OpBulletListEnd, OpOrderedListEnd:
		c.tight = c.tight[:len(c.tight)-1]
		c.WriteString(tags[op.Type])
	case OpListItemStart:
		c.WriteString("<li>")
	case OpListItemEnd:
		c.WriteString("</li>\n")
	default:
		c.WriteString(tags[op.Type])
	}
}

// cr starts a new line unless the output is empty or already at the start of
// a line.
func (c *HTMLCodec) cr() {
	if s := c.String(); s != "" && s[len(s)-1] != '\n' {
		c.WriteByte('\n')
	}
}

func (c *HTMLCodec) inTightItem() bool {
	return len(c.tight) > 0 && c.tight[len(c.tight)-1]
}

var inlineTags = []string{
	OpNewLine:       "\n",
	OpEmphasisStart: "<em>", OpEmphasisEnd: "</em>",
	OpStrongEmphasisStart: "<strong>", OpStrongEmphasisEnd: "</strong>",
	OpLinkEnd:       "</a>",
	OpHardLineBreak: "<br />\n",
}

func (c *HTMLCodec) renderInline(ops []InlineOp) {
	for _, op := range ops {
		switch op.Type {
		case OpLinkStart:
			drop := false
			if c.ConvertLink != nil {
				op.Dest = c.ConvertLink(op.Dest)
				drop = op.Dest == ""
			}
			c.dropped = append(c.dropped, drop)
			if drop {
				continue
			}
		case OpLinkEnd:
			dropped := c.dropped[len(c.dropped)-1]
			c.dropped = c.dropped[:len(c.dropped)-1]
			if dropped {
				continue
			}
		case OpAutolink:
			if c.ConvertLink != nil {
				if op.Dest = c.ConvertLink(op.Dest); op.Dest == "" {
					op = InlineOp{Type: OpText, Text: op.Text}
				}
			}
		}
		doInline(&c.Builder, op)
	}
}

// RenderInlineContentToHTML renders inline content to HTML, writing to a
// [strings.Builder].
func RenderInlineContentToHTML(sb *strings.Builder, ops []InlineOp) {
	for _, op := range ops {
		doInline(sb, op)
	}
}

func doInline(sb *strings.Builder, op InlineOp) {
	switch op.Type {
	case OpText:
		sb.WriteString(escapeHTML(op.Text))
	case OpCodeSpan:
		sb.WriteString("<code>")
		sb.WriteString(escapeHTML(op.Text))
		sb.WriteString("</code>")
	case OpLinkStart:
		var attrs attrBuilder
		attrs.set("href", escapeURL(op.Dest))
		if op.Text != "" {
			attrs.set("title", op.Text)
		}
		fmt.Fprintf(sb, "<a%s>", &attrs)
	case OpAutolink:
		var attrs attrBuilder
		attrs.set("href", escapeURL(op.Dest))
		fmt.Fprintf(sb, "<a%s>%s</a>", &attrs, escapeHTML(op.Text))
	default:
		sb.WriteString(inlineTags[op.Type])
	}
}

type attrBuilder struct{ strings.Builder }

func (a *attrBuilder) set(k, v string) { fmt.Fprintf(a, ` %s="%s"`, k, escapeHTML(v)) }
