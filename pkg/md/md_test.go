package md_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.lessondeck.sh/pkg/md"
	"src.lessondeck.sh/pkg/testutil"
)

var dedent = testutil.Dedent

type opRecorder struct{ ops []Op }

func (r *opRecorder) Do(op Op) { r.ops = append(r.ops, op) }

func text(s string) InlineOp { return InlineOp{Type: OpText, Text: s} }

func inline(t InlineOpType) InlineOp { return InlineOp{Type: t} }

func para(content ...InlineOp) Op { return Op{Type: OpParagraph, Content: content} }

func op(t OpType) Op { return Op{Type: t} }

var renderTests = []struct {
	name     string
	markdown string
	want     []Op
}{
	{
		name:     "empty",
		markdown: "",
		want:     nil,
	},
	{
		name:     "heading and paragraph",
		markdown: "# Title #\n\nHello *world*.",
		want: []Op{
			{Type: OpHeading, Number: 1, Content: []InlineOp{text("Title")}},
			para(text("Hello "), inline(OpEmphasisStart), text("world"),
				inline(OpEmphasisEnd), text(".")),
		},
	},
	{
		name:     "code span and strong emphasis",
		markdown: "Use `let` and **bold**",
		want: []Op{para(
			text("Use "), InlineOp{Type: OpCodeSpan, Text: "let"}, text(" and "),
			inline(OpStrongEmphasisStart), text("bold"), inline(OpStrongEmphasisEnd))},
	},
	{
		name:     "intraword underscores",
		markdown: "snake_case_name",
		want:     []Op{para(text("snake_case_name"))},
	},
	{
		name:     "backslash escapes",
		markdown: `\*not\* emphasis`,
		want:     []Op{para(text("*not* emphasis"))},
	},
	{
		name:     "soft and hard line breaks",
		markdown: "a\nb  \nc",
		want: []Op{para(text("a"), inline(OpNewLine), text("b"),
			inline(OpHardLineBreak), text("c"))},
	},
	{
		name:     "link with title",
		markdown: `See [the *docs*](https://go.dev "Go").`,
		want: []Op{para(
			text("See "), InlineOp{Type: OpLinkStart, Dest: "https://go.dev", Text: "Go"},
			text("the "), inline(OpEmphasisStart), text("docs"), inline(OpEmphasisEnd),
			inline(OpLinkEnd), text("."))},
	},
	{
		name:     "autolink",
		markdown: "<https://go.dev>",
		want: []Op{para(
			InlineOp{Type: OpAutolink, Text: "https://go.dev", Dest: "https://go.dev"})},
	},
	{
		name:     "fenced code block",
		markdown: "```swift\nlet x = 1\n\nprint(x)\n```",
		want: []Op{{Type: OpCodeBlock, Info: "swift",
			Lines: []string{"let x = 1", "", "print(x)"}}},
	},
	{
		name:     "unclosed code block",
		markdown: "~~~\ncode",
		want:     []Op{{Type: OpCodeBlock, Lines: []string{"code"}}},
	},
	{
		name:     "thematic break",
		markdown: "a\n\n* * *\n\nb",
		want:     []Op{para(text("a")), op(OpThematicBreak), para(text("b"))},
	},
	{
		name:     "blockquote with lazy continuation",
		markdown: "> quote\ncontinued",
		want: []Op{
			op(OpBlockquoteStart),
			para(text("quote"), inline(OpNewLine), text("continued")),
			op(OpBlockquoteEnd),
		},
	},
	{
		name:     "tight bullet list",
		markdown: "- a\n- b",
		want: []Op{
			{Type: OpBulletListStart, Tight: true},
			op(OpListItemStart), para(text("a")), op(OpListItemEnd),
			op(OpListItemStart), para(text("b")), op(OpListItemEnd),
			op(OpBulletListEnd),
		},
	},
	{
		name:     "loose ordered list",
		markdown: "3. a\n\n4. b",
		want: []Op{
			{Type: OpOrderedListStart, Number: 3},
			op(OpListItemStart), para(text("a")), op(OpListItemEnd),
			op(OpListItemStart), para(text("b")), op(OpListItemEnd),
			op(OpOrderedListEnd),
		},
	},
	{
		name:     "different bullets start new lists",
		markdown: "- a\n+ b",
		want: []Op{
			{Type: OpBulletListStart, Tight: true},
			op(OpListItemStart), para(text("a")), op(OpListItemEnd),
			op(OpBulletListEnd),
			{Type: OpBulletListStart, Tight: true},
			op(OpListItemStart), para(text("b")), op(OpListItemEnd),
			op(OpBulletListEnd),
		},
	},
	{
		name:     "ordered list not starting with 1 does not interrupt paragraph",
		markdown: "text\n2. more",
		want:     []Op{para(text("text"), inline(OpNewLine), text("2. more"))},
	},
}

func TestRender(t *testing.T) {
	for _, tc := range renderTests {
		t.Run(tc.name, func(t *testing.T) {
			var r opRecorder
			Render(tc.markdown, &r)
			if diff := cmp.Diff(tc.want, r.ops); diff != "" {
				t.Errorf("Render(%q) (-want +got):\n%s", tc.markdown, diff)
			}
		})
	}
}

func TestRender_CRLF(t *testing.T) {
	var r opRecorder
	Render("# A\r\n\r\nb\r\n", &r)
	want := []Op{
		{Type: OpHeading, Number: 1, Content: []InlineOp{text("A")}},
		para(text("b")),
	}
	if diff := cmp.Diff(want, r.ops); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
