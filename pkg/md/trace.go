package md

import (
	"fmt"
	"strings"
)

var opTypeNames = [...]string{
	OpThematicBreak:    "OpThematicBreak",
	OpHeading:          "OpHeading",
	OpCodeBlock:        "OpCodeBlock",
	OpParagraph:        "OpParagraph",
	OpBlockquoteStart:  "OpBlockquoteStart",
	OpBlockquoteEnd:    "OpBlockquoteEnd",
	OpBulletListStart:  "OpBulletListStart",
	OpBulletListEnd:    "OpBulletListEnd",
	OpOrderedListStart: "OpOrderedListStart",
	OpOrderedListEnd:   "OpOrderedListEnd",
	OpListItemStart:    "OpListItemStart",
	OpListItemEnd:      "OpListItemEnd",
}

func (t OpType) String() string {
	if int(t) < len(opTypeNames) {
		return opTypeNames[t]
	}
	return fmt.Sprintf("OpType(%d)", uint(t))
}

var inlineOpTypeNames = [...]string{
	OpText:                "OpText",
	OpCodeSpan:            "OpCodeSpan",
	OpEmphasisStart:       "OpEmphasisStart",
	OpEmphasisEnd:         "OpEmphasisEnd",
	OpStrongEmphasisStart: "OpStrongEmphasisStart",
	OpStrongEmphasisEnd:   "OpStrongEmphasisEnd",
	OpLinkStart:           "OpLinkStart",
	OpLinkEnd:             "OpLinkEnd",
	OpAutolink:            "OpAutolink",
	OpNewLine:             "OpNewLine",
	OpHardLineBreak:       "OpHardLineBreak",
}

func (t InlineOpType) String() string {
	if int(t) < len(inlineOpTypeNames) {
		return inlineOpTypeNames[t]
	}
	return fmt.Sprintf("InlineOpType(%d)", uint(t))
}

// TraceCodec is a Codec that records all the Op's passed to its Do method.
type TraceCodec struct{ strings.Builder }

func (c *TraceCodec) Do(op Op) {
	if c.Len() > 0 {
		c.WriteByte('\n')
	}
	c.WriteString(op.Type.String())
	if op.Number != 0 {
		fmt.Fprintf(c, " Number=%d", op.Number)
	}
	if op.Info != "" {
		fmt.Fprintf(c, " Info=%q", op.Info)
	}
	if op.Tight {
		c.WriteString(" Tight")
	}
	for _, line := range op.Lines {
		c.WriteString("\n  ")
		c.WriteString(line)
	}
	for _, inlineOp := range op.Content {
		c.WriteString("\n  ")
		c.WriteString(inlineOp.Type.String())
		if inlineOp.Text != "" {
			fmt.Fprintf(c, " Text=%q", inlineOp.Text)
		}
		if inlineOp.Dest != "" {
			fmt.Fprintf(c, " Dest=%q", inlineOp.Dest)
		}
	}
}
