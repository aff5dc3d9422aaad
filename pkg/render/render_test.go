package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lessondeck.sh/pkg/deck"
	"src.lessondeck.sh/pkg/lesson"
	"src.lessondeck.sh/pkg/must"
	. "src.lessondeck.sh/pkg/render"
	"src.lessondeck.sh/pkg/tt"
)

var (
	Args = tt.Args
	Fn   = tt.Fn
)

func TestParseFormat(t *testing.T) {
	tt.Test(t, Fn("ParseFormat", ParseFormat), tt.Table{
		Args("plain").Rets(Plain, nil),
		Args("HTML").Rets(HTML, nil),
		Args("Markdown").Rets(Markdown, nil),
		Args("pdf").Rets(Plain, &UnsupportedFormatError{"pdf"}),
		Args("").Rets(Plain, &UnsupportedFormatError{""}),
	})
}

func TestFormat_StringAndExt(t *testing.T) {
	tt.Test(t, Fn("Format.String", Format.String), tt.Table{
		Args(Plain).Rets("plain"),
		Args(HTML).Rets("html"),
		Args(Markdown).Rets("markdown"),
		Args(Format(7)).Rets("Format(7)"),
	})
	tt.Test(t, Fn("Format.Ext", Format.Ext), tt.Table{
		Args(Plain).Rets(".txt"),
		Args(HTML).Rets(".html"),
		Args(Markdown).Rets(".md"),
		Args(Format(-1)).Rets(""),
	})
}

func testDeck() *deck.Index {
	return must.OK1(deck.Build([]lesson.Source{
		{Name: "1.Basic", Text: "//: [Next](@next)\nlet x = 1\n",
			Meta: lesson.Meta{Lang: "swift"}},
		{Name: "03. Collection",
			Text: "//: [Previous](@previous) | [Next](@next)\nvar a = [1]\n",
			Meta: lesson.Meta{Lang: "swift"}},
	}))
}

var renderTests = []struct {
	name   string
	id     string
	format Format
	want   string
}{
	{
		name:   "markdown with resolved cross-reference",
		id:     "1-basic",
		format: Markdown,
		want:   "# Basic\n\n[Next](03-collection.md)\n\n```swift\nlet x = 1\n```\n",
	},
	{
		name:   "markdown with boundary cross-reference",
		id:     "03-collection",
		format: Markdown,
		want: "# Collection\n\n[Previous](1-basic.md) | Next\n\n" +
			"```swift\nvar a = [1]\n```\n",
	},
	{
		name:   "html",
		id:     "03-collection",
		format: HTML,
		want: "<article id=\"03-collection\">\n" +
			"<h1>Collection</h1>\n" +
			"<p><a href=\"1-basic.html\">Previous</a> | Next</p>\n" +
			"<pre><code class=\"language-swift\">var a = [1]\n</code></pre>\n" +
			"</article>\n",
	},
	{
		name:   "plain",
		id:     "03-collection",
		format: Plain,
		want:   "Collection\n==========\n\nPrevious | Next\n\n    var a = [1]\n",
	},
}

func TestRenderer_Render(t *testing.T) {
	idx := testDeck()
	r := Renderer{Links: DeckLinks(idx)}
	for _, tc := range renderTests {
		t.Run(tc.name, func(t *testing.T) {
			u := must.OK1(idx.Get(tc.id))
			got, err := r.Render(u, tc.format)
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Render (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_Render_IsIdempotent(t *testing.T) {
	idx := testDeck()
	r := Renderer{Width: 30, Links: DeckLinks(idx)}
	for _, u := range idx.All() {
		for _, f := range []Format{Plain, HTML, Markdown} {
			first := must.OK1(r.Render(u, f))
			second := must.OK1(r.Render(u, f))
			if first != second {
				t.Errorf("rendering %s as %s is not idempotent:\n%q\n%q", u.ID, f, first, second)
			}
		}
	}
}

func TestRenderer_Render_NoLinks(t *testing.T) {
	u := must.OK1(testDeck().Get("1-basic"))
	got := must.OK1(Renderer{}.Render(u, Markdown))
	want := "# Basic\n\nNext\n\n```swift\nlet x = 1\n```\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render (-want +got):\n%s", diff)
	}
}

func TestRenderer_Render_CrossReferencesInCodeAreKept(t *testing.T) {
	u := lesson.Unit{ID: "a", Title: "A",
		Body: "```\n[Next](@next)\n```\n"}
	got := must.OK1(Renderer{}.Render(u, Markdown))
	want := "# A\n\n```\n[Next](@next)\n```\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render (-want +got):\n%s", diff)
	}
}

func TestRenderer_Render_CrossReferencesInCodeSpansAreKept(t *testing.T) {
	u := lesson.Unit{ID: "a", Title: "A",
		Body: "Write `[Next](@next)` to link the next page.\n"}
	got := must.OK1(Renderer{}.Render(u, Markdown))
	want := "# A\n\nWrite `[Next](@next)` to link the next page.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render (-want +got):\n%s", diff)
	}
}

func TestRenderer_Render_UnsupportedFormat(t *testing.T) {
	_, err := Renderer{}.Render(lesson.Unit{ID: "a", Title: "A"}, Format(7))
	var formatErr *UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("got error %v, want *UnsupportedFormatError", err)
	}
	if formatErr.Format != "Format(7)" {
		t.Errorf("got format %q", formatErr.Format)
	}
}

func TestDocument(t *testing.T) {
	tt.Test(t, Fn("Document", Document), tt.Table{
		Args(lesson.Unit{Title: "Notes", Body: "Some *text*"}).
			Rets("# Notes\n\nSome *text*\n"),
		Args(lesson.Unit{Title: "Empty"}).Rets("# Empty\n"),
		Args(lesson.Unit{Title: "snake_case [1]", Body: "x"}).
			Rets("# snake\\_case \\[1\\]\n\nx\n"),
		Args(lesson.Unit{Title: "Code", Body: "print(1)\n", Lang: "swift"}).
			Rets("# Code\n\n```swift\nprint(1)\n```\n"),
	})
}

func TestIsMarkdown(t *testing.T) {
	tt.Test(t, Fn("IsMarkdown", IsMarkdown), tt.Table{
		Args("").Rets(true),
		Args("Markdown").Rets(true),
		Args("md").Rets(true),
		Args("swift").Rets(false),
		Args("text").Rets(false),
	})
}

func TestDeckLinks(t *testing.T) {
	links := DeckLinks(testDeck())
	tt.Test(t, Fn("Next", links.Next), tt.Table{
		Args("1-basic").Rets("03-collection", true),
		Args("03-collection").Rets("", false),
		Args("nope").Rets("", false),
	})
	tt.Test(t, Fn("Previous", links.Previous), tt.Table{
		Args("03-collection").Rets("1-basic", true),
		Args("1-basic").Rets("", false),
	})
}
