// Package md implements a Markdown parser with pluggable output codecs.
//
// The parser understands the parts of CommonMark that lesson prose uses: ATX
// headings, paragraphs, fenced code blocks, thematic breaks, blockquotes,
// bullet and ordered lists, and the inline constructs code span, emphasis,
// strong emphasis, link, autolink and hard line break. Setext headings,
// indented code blocks, HTML blocks and reference links are not recognized;
// such text is treated as paragraph content.
//
// Parsing produces a sequence of Op values that a Codec consumes. HTMLCodec
// produces HTML; TextCodec produces text for terminals.
package md

import (
	"regexp"
	"strconv"
	"strings"
)

// Op represents a block-level operation.
type Op struct {
	Type OpType
	// Heading level for OpHeading, start number for OpOrderedListStart.
	Number int
	// Info string of OpCodeBlock.
	Info string
	// Lines of OpCodeBlock.
	Lines []string
	// Inline content of OpHeading and OpParagraph.
	Content []InlineOp
	// Whether the list is tight, for OpBulletListStart and
	// OpOrderedListStart. Paragraphs directly inside items of a tight list
	// are not wrapped in paragraph tags by HTMLCodec.
	Tight bool
}

// OpType enumerates block-level operations.
type OpType uint

// Possible output operations.
const (
	OpThematicBreak OpType = iota
	OpHeading
	OpCodeBlock
	OpParagraph
	OpBlockquoteStart
	OpBlockquoteEnd
	OpBulletListStart
	OpBulletListEnd
	OpOrderedListStart
	OpOrderedListEnd
	OpListItemStart
	OpListItemEnd
)

// Codec is used to render output.
type Codec interface {
	Do(Op)
}

// StringerCodec is a Codec that accumulates its output as a string.
type StringerCodec interface {
	Codec
	String() string
}

// Render parses markdown and feeds the resulting ops to codec.
func Render(text string, codec Codec) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	p := blockParser{codec}
	p.parse(lines)
}

// RenderString is like Render, but returns the output of codec.
func RenderString(text string, codec StringerCodec) string {
	Render(text, codec)
	return codec.String()
}

var (
	thematicBreakRegexp = regexp.MustCompile(
		`^ {0,3}((?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,})$`)

	// Capture groups: 1. heading opener, 2. rest of line.
	atxHeadingRegexp       = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*)|$)`)
	atxHeadingCloserRegexp = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)

	// Capture groups: 1. indent, 2. fence, 3. info string.
	codeFenceRegexp = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})(.*)$")

	blockquoteMarkerRegexp = regexp.MustCompile(`^ {0,3}> ?`)

	// Capture groups: 1. indent, 2. marker, 3. spaces, 4. content.
	bulletItemRegexp = regexp.MustCompile(`^( {0,3})([-+*])(?:( {1,4})(.*)|[ \t]*$)`)
	// Capture groups: 1. indent, 2. number, 3. delimiter, 4. spaces, 5. content.
	orderedItemRegexp = regexp.MustCompile(`^( {0,3})([0-9]{1,9})([.)])(?:( {1,4})(.*)|[ \t]*$)`)
)

type blockParser struct {
	codec Codec
}

func (p *blockParser) parse(lines []string) {
	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case isBlankLine(line):
			i++
		case thematicBreakRegexp.MatchString(line):
			p.codec.Do(Op{Type: OpThematicBreak})
			i++
		case atxHeadingRegexp.MatchString(line):
			p.parseHeading(line)
			i++
		case codeFenceRegexp.MatchString(line) && validFence(line):
			i = p.parseFencedCodeBlock(lines, i)
		case blockquoteMarkerRegexp.MatchString(line):
			i = p.parseBlockquote(lines, i)
		case matchListItem(line) != nil:
			i = p.parseList(lines, i)
		default:
			i = p.parseParagraph(lines, i)
		}
	}
}

func (p *blockParser) parseHeading(line string) {
	m := atxHeadingRegexp.FindStringSubmatch(line)
	content := strings.TrimRight(m[2], " \t")
	if loc := atxHeadingCloserRegexp.FindStringIndex(content); loc != nil {
		content = content[:loc[0]]
	}
	p.codec.Do(Op{Type: OpHeading, Number: len(m[1]),
		Content: parseInline(strings.TrimSpace(content))})
}

// A backquote fence may not have backquotes in its info string.
func validFence(line string) bool {
	m := codeFenceRegexp.FindStringSubmatch(line)
	return m[2][0] != '`' || !strings.ContainsRune(m[3], '`')
}

func (p *blockParser) parseFencedCodeBlock(lines []string, i int) int {
	m := codeFenceRegexp.FindStringSubmatch(lines[i])
	indent, fence, info := len(m[1]), m[2], strings.TrimSpace(m[3])
	var code []string
	for i++; i < len(lines); i++ {
		line := lines[i]
		if isFenceCloser(line, fence) {
			i++
			break
		}
		code = append(code, trimIndent(line, indent))
	}
	p.codec.Do(Op{Type: OpCodeBlock, Info: info, Lines: code})
	return i
}

func isFenceCloser(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	trimmed = strings.TrimRight(trimmed, " \t")
	return len(trimmed) >= len(fence) &&
		strings.Trim(trimmed, fence[:1]) == ""
}

func (p *blockParser) parseBlockquote(lines []string, i int) int {
	var inner []string
	for ; i < len(lines); i++ {
		line := lines[i]
		if loc := blockquoteMarkerRegexp.FindStringIndex(line); loc != nil {
			inner = append(inner, line[loc[1]:])
		} else if len(inner) > 0 && !isBlankLine(inner[len(inner)-1]) &&
			!isBlankLine(line) && !startsBlock(line) {
			// Lazy continuation of a paragraph.
			inner = append(inner, line)
		} else {
			break
		}
	}
	p.codec.Do(Op{Type: OpBlockquoteStart})
	p.parse(inner)
	p.codec.Do(Op{Type: OpBlockquoteEnd})
	return i
}

type listItem struct {
	indent  int // Column at which content starts.
	bullet  byte
	delim   byte
	number  int
	content string
}

func (it *listItem) sameList(other *listItem) bool {
	return other != nil && it.bullet == other.bullet && it.delim == other.delim
}

func matchListItem(line string) *listItem {
	if m := bulletItemRegexp.FindStringSubmatch(line); m != nil {
		return &listItem{
			indent: len(m[1]) + 1 + contentGap(m[3]), bullet: m[2][0], content: m[4]}
	}
	if m := orderedItemRegexp.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		return &listItem{
			indent: len(m[1]) + len(m[2]) + 1 + contentGap(m[4]),
			delim:  m[3][0], number: n, content: m[5]}
	}
	return nil
}

// The gap between a list marker and the content is at least 1. An empty item
// has a gap of 1.
func contentGap(spaces string) int {
	if spaces == "" {
		return 1
	}
	return len(spaces)
}

func (p *blockParser) parseList(lines []string, i int) int {
	first := matchListItem(lines[i])
	var items [][]string
	tight := true
items:
	for i < len(lines) {
		item := matchListItem(lines[i])
		if !first.sameList(item) {
			break
		}
		content := []string{item.content}
		for i++; i < len(lines); {
			line := lines[i]
			if isBlankLine(line) {
				j := i
				for j < len(lines) && isBlankLine(lines[j]) {
					j++
				}
				if j < len(lines) && indentOf(lines[j]) >= item.indent {
					for ; i < j; i++ {
						content = append(content, "")
					}
					tight = false
					continue
				}
				if j < len(lines) && first.sameList(matchListItem(lines[j])) {
					tight = false
					i = j
					items = append(items, content)
					continue items
				}
				items = append(items, content)
				break items
			}
			if indentOf(line) >= item.indent {
				content = append(content, line[item.indent:])
				i++
				continue
			}
			if !isBlankLine(content[len(content)-1]) && !startsBlock(line) {
				// Lazy continuation of a paragraph.
				content = append(content, strings.TrimLeft(line, " "))
				i++
				continue
			}
			break
		}
		items = append(items, content)
	}

	start, end := OpBulletListStart, OpBulletListEnd
	if first.bullet == 0 {
		start, end = OpOrderedListStart, OpOrderedListEnd
	}
	p.codec.Do(Op{Type: start, Number: first.number, Tight: tight})
	for _, content := range items {
		p.codec.Do(Op{Type: OpListItemStart})
		p.parse(content)
		p.codec.Do(Op{Type: OpListItemEnd})
	}
	p.codec.Do(Op{Type: end})
	return i
}

func (p *blockParser) parseParagraph(lines []string, i int) int {
	var para []string
	for ; i < len(lines); i++ {
		line := lines[i]
		if isBlankLine(line) || (len(para) > 0 && interruptsParagraph(line)) {
			break
		}
		para = append(para, strings.TrimLeft(line, " \t"))
	}
	text := strings.TrimRight(strings.Join(para, "\n"), " \t")
	p.codec.Do(Op{Type: OpParagraph, Content: parseInline(text)})
	return i
}

// startsBlock reports whether line starts a block other than a paragraph.
func startsBlock(line string) bool {
	return thematicBreakRegexp.MatchString(line) ||
		atxHeadingRegexp.MatchString(line) ||
		(codeFenceRegexp.MatchString(line) && validFence(line)) ||
		blockquoteMarkerRegexp.MatchString(line) ||
		matchListItem(line) != nil
}

// Like startsBlock, but an ordered list can only interrupt a paragraph if it
// starts with 1, and empty list items cannot interrupt a paragraph.
func interruptsParagraph(line string) bool {
	if item := matchListItem(line); item != nil {
		return item.content != "" && (item.bullet != 0 || item.number == 1)
	}
	return startsBlock(line)
}

func isBlankLine(line string) bool {
	return strings.Trim(line, " \t") == ""
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func trimIndent(line string, n int) string {
	for i := 0; i < n && i < len(line); i++ {
		if line[i] != ' ' {
			return line[i:]
		}
	}
	if n > len(line) {
		return ""
	}
	return line[n:]
}
