package md_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.lessondeck.sh/pkg/md"
)

var traceTests = []struct {
	name     string
	markdown string
	want     string
}{
	{
		name:     "heading and code",
		markdown: "## Go\n\n```swift\nlet x = 1\n```\n",
		want: "OpHeading Number=2\n  OpText Text=\"Go\"\n" +
			"OpCodeBlock Info=\"swift\"\n  let x = 1",
	},
	{
		name:     "tight list",
		markdown: "- a\n- [b](@next)\n",
		want: "OpBulletListStart Tight\n" +
			"OpListItemStart\nOpParagraph\n  OpText Text=\"a\"\nOpListItemEnd\n" +
			"OpListItemStart\nOpParagraph\n  OpLinkStart Dest=\"@next\"\n  OpText Text=\"b\"\n  OpLinkEnd\n" +
			"OpListItemEnd\nOpBulletListEnd",
	},
}

func TestTraceCodec(t *testing.T) {
	for _, tc := range traceTests {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderString(tc.markdown, &TraceCodec{})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpTypeString(t *testing.T) {
	if s := OpType(100).String(); s != "OpType(100)" {
		t.Errorf("got %q", s)
	}
	if s := OpAutolink.String(); s != "OpAutolink" {
		t.Errorf("got %q", s)
	}
}
