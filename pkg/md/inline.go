package md

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// InlineOp represents an inline operation.
type InlineOp struct {
	Type InlineOpType
	// Text of OpText and OpCodeSpan, title of OpLinkStart.
	Text string
	// Destination of OpLinkStart and OpAutolink.
	Dest string
}

// InlineOpType enumerates inline operations.
type InlineOpType uint

// Possible inline operations.
const (
	OpText InlineOpType = iota
	OpCodeSpan
	OpEmphasisStart
	OpEmphasisEnd
	OpStrongEmphasisStart
	OpStrongEmphasisEnd
	OpLinkStart
	OpLinkEnd
	OpAutolink
	OpNewLine
	OpHardLineBreak
)

var autolinkRegexp = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9+.\-]{1,31}:[^<>\x00-\x20]*)>`)

// A piece is either a run of emphasis delimiters, or a sequence of ops that
// emphasis processing does not look into.
type piece struct {
	ops []InlineOp

	delim    byte
	n, origN int
	canOpen  bool
	canClose bool
	// Ops emitted before and after the unused delimiters.
	ends, starts []InlineOp
}

type inlineParser struct {
	text   string
	pos    int
	buf    strings.Builder
	pieces []*piece
}

func parseInline(text string) []InlineOp {
	p := inlineParser{text: text}
	p.parse()
	p.processEmphasis()
	return p.emit()
}

func (p *inlineParser) parse() {
	for p.pos < len(p.text) {
		b := p.text[p.pos]
		switch b {
		case '\\':
			p.backslash()
		case '`':
			p.codeSpan()
		case '[':
			p.link()
		case '<':
			p.autolink()
		case '*', '_':
			p.delimiterRun(b)
		case '\n':
			p.lineBreak()
		default:
			p.buf.WriteByte(b)
			p.pos++
		}
	}
	p.flush()
}

func (p *inlineParser) backslash() {
	if p.pos+1 < len(p.text) {
		next := p.text[p.pos+1]
		if next == '\n' {
			p.addOp(InlineOp{Type: OpHardLineBreak})
			p.pos += 2
			p.skipSpaces()
			return
		}
		if isASCIIPunct(next) {
			p.buf.WriteByte(next)
			p.pos += 2
			return
		}
	}
	p.buf.WriteByte('\\')
	p.pos++
}

func (p *inlineParser) codeSpan() {
	n := runLength(p.text, p.pos, '`')
	opener := p.text[p.pos : p.pos+n]
	for i := p.pos + n; i < len(p.text); {
		j := strings.IndexByte(p.text[i:], '`')
		if j == -1 {
			break
		}
		j += i
		m := runLength(p.text, j, '`')
		if m == n {
			p.addOp(InlineOp{Type: OpCodeSpan,
				Text: normalizeCodeSpan(p.text[p.pos+n : j])})
			p.pos = j + m
			return
		}
		i = j + m
	}
	p.buf.WriteString(opener)
	p.pos += n
}

func normalizeCodeSpan(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

func (p *inlineParser) link() {
	closer := matchBracket(p.text, p.pos)
	if closer == -1 || closer+1 >= len(p.text) || p.text[closer+1] != '(' {
		p.buf.WriteByte('[')
		p.pos++
		return
	}
	dest, title, end, ok := parseLinkTail(p.text, closer+2)
	if !ok {
		p.buf.WriteByte('[')
		p.pos++
		return
	}
	ops := []InlineOp{{Type: OpLinkStart, Dest: dest, Text: title}}
	ops = append(ops, parseInline(p.text[p.pos+1:closer])...)
	ops = append(ops, InlineOp{Type: OpLinkEnd})
	p.addOp(ops...)
	p.pos = end
}

// matchBracket returns the index of the "]" matching the "[" at i, or -1.
func matchBracket(text string, i int) int {
	depth := 0
	for ; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '`':
			n := runLength(text, i, '`')
			if j := strings.Index(text[i+n:], text[i:i+n]); j != -1 {
				i += n + j + n - 1
			} else {
				i += n - 1
			}
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseLinkTail parses the destination and optional title of an inline link,
// starting right after the "(".
func parseLinkTail(text string, i int) (dest, title string, end int, ok bool) {
	i = skipWhitespace(text, i)
	if i < len(text) && text[i] == '<' {
		j := strings.IndexAny(text[i+1:], ">\n")
		if j == -1 || text[i+1+j] != '>' {
			return "", "", 0, false
		}
		dest = text[i+1 : i+1+j]
		i += j + 2
	} else {
		start, depth := i, 0
	loop:
		for ; i < len(text); i++ {
			switch c := text[i]; {
			case c == '\\' && i+1 < len(text):
				i++
			case c == '(':
				depth++
			case c == ')':
				if depth == 0 {
					break loop
				}
				depth--
			case c <= ' ':
				break loop
			}
		}
		dest = unescape(text[start:i])
	}
	i = skipWhitespace(text, i)
	if i < len(text) && (text[i] == '"' || text[i] == '\'') {
		q := text[i]
		j := strings.IndexByte(text[i+1:], q)
		if j == -1 {
			return "", "", 0, false
		}
		title = unescape(text[i+1 : i+1+j])
		i = skipWhitespace(text, i+j+2)
	}
	if i >= len(text) || text[i] != ')' {
		return "", "", 0, false
	}
	return dest, title, i + 1, true
}

func (p *inlineParser) autolink() {
	if m := autolinkRegexp.FindStringSubmatch(p.text[p.pos:]); m != nil {
		p.addOp(InlineOp{Type: OpAutolink, Text: m[1], Dest: m[1]})
		p.pos += len(m[0])
		return
	}
	p.buf.WriteByte('<')
	p.pos++
}

func (p *inlineParser) delimiterRun(b byte) {
	n := runLength(p.text, p.pos, b)
	prev, _ := utf8.DecodeLastRuneInString(p.text[:p.pos])
	next, _ := utf8.DecodeRuneInString(p.text[p.pos+n:])
	if p.pos == 0 {
		prev = ' '
	}
	if p.pos+n == len(p.text) {
		next = ' '
	}
	left := !isWhitespace(next) &&
		(!isPunct(next) || isWhitespace(prev) || isPunct(prev))
	right := !isWhitespace(prev) &&
		(!isPunct(prev) || isWhitespace(next) || isPunct(next))
	canOpen, canClose := left, right
	if b == '_' {
		canOpen = left && (!right || isPunct(prev))
		canClose = right && (!left || isPunct(next))
	}
	p.flush()
	p.pieces = append(p.pieces, &piece{
		delim: b, n: n, origN: n, canOpen: canOpen, canClose: canClose})
	p.pos += n
}

func (p *inlineParser) lineBreak() {
	text := p.buf.String()
	trimmed := strings.TrimRight(text, " ")
	hard := len(text)-len(trimmed) >= 2
	p.buf.Reset()
	p.buf.WriteString(trimmed)
	if hard {
		p.addOp(InlineOp{Type: OpHardLineBreak})
	} else {
		p.addOp(InlineOp{Type: OpNewLine})
	}
	p.pos++
	p.skipSpaces()
}

func (p *inlineParser) skipSpaces() {
	for p.pos < len(p.text) && p.text[p.pos] == ' ' {
		p.pos++
	}
}

func (p *inlineParser) addOp(ops ...InlineOp) {
	p.flush()
	p.pieces = append(p.pieces, &piece{ops: ops})
}

func (p *inlineParser) flush() {
	if p.buf.Len() > 0 {
		p.pieces = append(p.pieces,
			&piece{ops: []InlineOp{{Type: OpText, Text: p.buf.String()}}})
		p.buf.Reset()
	}
}

// processEmphasis matches delimiter runs into emphasis and strong emphasis.
func (p *inlineParser) processEmphasis() {
	for ci, c := range p.pieces {
		if c.delim == 0 || !c.canClose {
			continue
		}
		for c.n > 0 {
			oi := -1
			for j := ci - 1; j >= 0; j-- {
				o := p.pieces[j]
				if o.delim == c.delim && o.canOpen && o.n > 0 && !multipleOf3(o, c) {
					oi = j
					break
				}
			}
			if oi == -1 {
				break
			}
			o := p.pieces[oi]
			use, start, end := 1, OpEmphasisStart, OpEmphasisEnd
			if o.n >= 2 && c.n >= 2 {
				use, start, end = 2, OpStrongEmphasisStart, OpStrongEmphasisEnd
			}
			o.starts = append([]InlineOp{{Type: start}}, o.starts...)
			c.ends = append(c.ends, InlineOp{Type: end})
			o.n -= use
			c.n -= use
			for _, between := range p.pieces[oi+1 : ci] {
				between.canOpen, between.canClose = false, false
			}
		}
	}
}

func multipleOf3(o, c *piece) bool {
	return (o.canClose || c.canOpen) &&
		(o.origN+c.origN)%3 == 0 && !(o.origN%3 == 0 && c.origN%3 == 0)
}

func (p *inlineParser) emit() []InlineOp {
	var ops []InlineOp
	add := func(op InlineOp) {
		if op.Type == OpText {
			if op.Text == "" {
				return
			}
			if len(ops) > 0 && ops[len(ops)-1].Type == OpText {
				ops[len(ops)-1].Text += op.Text
				return
			}
		}
		ops = append(ops, op)
	}
	for _, pc := range p.pieces {
		if pc.delim == 0 {
			for _, op := range pc.ops {
				add(op)
			}
			continue
		}
		for _, op := range pc.ends {
			add(op)
		}
		add(InlineOp{Type: OpText, Text: strings.Repeat(string(pc.delim), pc.n)})
		for _, op := range pc.starts {
			add(op)
		}
	}
	return ops
}

func runLength(s string, i int, b byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == b {
		n++
	}
	return n
}

func skipWhitespace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) != -1
}

func isWhitespace(r rune) bool { return unicode.IsSpace(r) }

func isPunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }
