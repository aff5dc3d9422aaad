package md

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
	"src.lessondeck.sh/pkg/ui"
)

// TextCodec converts markdown to text for terminals.
type TextCodec struct {
	// Maximum width of output lines. Zero or negative disables wrapping.
	// Words wider than the available space are never broken.
	Width int
	// Whether to style headings, emphasis, links and code with SGR
	// sequences.
	Style bool

	sb         strings.Builder
	containers []*textContainer
	// Set after a container starts; its first block is not preceded by a
	// blank line.
	fresh bool
}

type textContainer struct {
	quote bool
	// For lists.
	tight  bool
	number int
	bullet bool
	items  int
	// For list items: marker written before the first line, and the indent
	// of subsequent lines.
	marker string
	indent string
	item   bool
}

var (
	headingStyle  = ui.Style{Bold: true}
	codeStyle     = ui.Style{Fg: ui.Yellow}
	linkStyle     = ui.Style{Underlined: true}
	emphasisStyle = ui.Style{Italic: true}
	strongStyle   = ui.Style{Bold: true}
	quoteStyle    = ui.Style{Dim: true}
)

func (c *TextCodec) String() string { return c.sb.String() }

func (c *TextCodec) Do(op Op) {
	switch op.Type {
	case OpThematicBreak:
		c.startBlock()
		c.writeLine(strings.Repeat("─", min(c.available(), 40)))
	case OpHeading:
		c.startBlock()
		lines := c.wrap(op.Content, headingStyle)
		for _, line := range lines {
			c.writeLine(line.text)
		}
		underline := "-"
		if op.Number == 1 {
			underline = "="
		}
		w := 0
		for _, line := range lines {
			w = max(w, line.width)
		}
		c.writeLine(strings.Repeat(underline, w))
	case OpCodeBlock:
		c.startBlock()
		for _, line := range op.Lines {
			c.writeLine("    " + c.styled(line, codeStyle))
		}
	case OpParagraph:
		c.startBlock()
		for _, line := range c.wrap(op.Content, ui.Style{}) {
			c.writeLine(line.text)
		}
	case OpBlockquoteStart:
		c.startContainer(&textContainer{quote: true})
	case OpBulletListStart:
		c.startContainer(&textContainer{tight: op.Tight, bullet: true})
	case OpOrderedListStart:
		c.startContainer(&textContainer{tight: op.Tight, number: op.Number})
	case OpListItemStart:
		list := c.containers[len(c.containers)-1]
		if !list.tight && list.items > 0 {
			c.blankLine()
		}
		list.items++
		marker := "• "
		if !list.bullet {
			marker = strconv.Itoa(list.number) + ". "
			list.number++
		}
		c.containers = append(c.containers, &textContainer{
			item: true, marker: marker, indent: strings.Repeat(" ", displayWidth(marker)),
			tight: list.tight})
		c.fresh = true
	case OpBlockquoteEnd, OpBulletListEnd, OpOrderedListEnd, OpListItemEnd:
		c.containers = c.containers[:len(c.containers)-1]
		c.fresh = false
	}
}

func (c *TextCodec) startContainer(ct *textContainer) {
	c.startBlock()
	c.containers = append(c.containers, ct)
	c.fresh = true
}

// startBlock separates a block from the previous one with a blank line,
// except inside items of tight lists.
func (c *TextCodec) startBlock() {
	if c.fresh {
		c.fresh = false
		return
	}
	if c.sb.Len() == 0 {
		return
	}
	if n := len(c.containers); n > 0 && c.containers[n-1].item && c.containers[n-1].tight {
		return
	}
	c.blankLine()
}

func (c *TextCodec) blankLine() {
	c.sb.WriteString(strings.TrimRight(c.prefix(false), " "))
	c.sb.WriteByte('\n')
}

func (c *TextCodec) writeLine(s string) {
	c.sb.WriteString(c.prefix(true))
	c.sb.WriteString(s)
	c.sb.WriteByte('\n')
}

// prefix returns the prefix of the current line. If consume is true, pending
// list item markers are written and cleared.
func (c *TextCodec) prefix(consume bool) string {
	var sb strings.Builder
	for _, ct := range c.containers {
		switch {
		case ct.quote:
			sb.WriteString(c.styled("│", quoteStyle) + " ")
		case ct.item && ct.marker != "" && consume:
			sb.WriteString(ct.marker)
			ct.marker = ""
		case ct.item:
			sb.WriteString(ct.indent)
		}
	}
	return sb.String()
}

func (c *TextCodec) prefixWidth() int {
	w := 0
	for _, ct := range c.containers {
		switch {
		case ct.quote:
			w += 2
		case ct.item:
			w += len(ct.indent)
		}
	}
	return w
}

// Width available for content, or a large number if there is no limit.
func (c *TextCodec) available() int {
	if c.Width <= 0 {
		return 1 << 30
	}
	return max(c.Width-c.prefixWidth(), 1)
}

func (c *TextCodec) styled(s string, style ui.Style) string {
	if !c.Style {
		return s
	}
	return style.Apply(s)
}

type textWord struct {
	text  string
	width int
}

type textLine struct {
	text  string
	width int
}

// wrap renders inline content and wraps it into lines.
func (c *TextCodec) wrap(ops []InlineOp, base ui.Style) []textLine {
	var (
		lines []textLine
		words []textWord
		word  textWord
		style = base
		stack []ui.Style
	)
	endWord := func() {
		if word.width > 0 || word.text != "" {
			words = append(words, word)
			word = textWord{}
		}
	}
	endLine := func() {
		endWord()
		lines = append(lines, c.fill(words)...)
		words = nil
	}
	addText := func(s string, st ui.Style) {
		for i, part := range strings.Split(s, " ") {
			if i > 0 {
				endWord()
			}
			if part != "" {
				word.text += c.styled(part, st)
				word.width += displayWidth(part)
			}
		}
	}
	push := func(st ui.Style) {
		stack = append(stack, style)
		style = style.Merge(st)
	}
	pop := func() {
		style = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
	for _, op := range ops {
		switch op.Type {
		case OpText:
			addText(op.Text, style)
		case OpCodeSpan:
			addText(op.Text, style.Merge(codeStyle))
		case OpEmphasisStart:
			push(emphasisStyle)
		case OpStrongEmphasisStart:
			push(strongStyle)
		case OpLinkStart:
			push(linkStyle)
		case OpEmphasisEnd, OpStrongEmphasisEnd, OpLinkEnd:
			pop()
		case OpAutolink:
			addText(op.Text, style.Merge(linkStyle))
		case OpNewLine:
			endWord()
		case OpHardLineBreak:
			endLine()
		}
	}
	endLine()
	return lines
}

// fill greedily packs words into lines no wider than the available width.
func (c *TextCodec) fill(words []textWord) []textLine {
	avail := c.available()
	var lines []textLine
	var cur textLine
	for _, w := range words {
		switch {
		case cur.text == "":
			cur = textLine{w.text, w.width}
		case cur.width+1+w.width <= avail:
			cur.text += " " + w.text
			cur.width += 1 + w.width
		default:
			lines = append(lines, cur)
			cur = textLine{w.text, w.width}
		}
	}
	if cur.text != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// displayWidth returns the number of terminal columns s occupies.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsControl(r):
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				w += 2
			default:
				w++
			}
		}
	}
	return w
}
