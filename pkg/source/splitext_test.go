package source

import (
	"testing"

	"src.lessondeck.sh/pkg/tt"
)

func TestSplitExt(t *testing.T) {
	tt.Test(t, tt.Fn("splitExt", splitExt), tt.Table{
		tt.Args("03. Collection").Rets("03. Collection", ""),
		tt.Args("03. Collection.md").Rets("03. Collection", ".md"),
		tt.Args("1.Basic").Rets("1.Basic", ""),
		tt.Args("1.Basic.swift").Rets("1.Basic", ".swift"),
		tt.Args("12.txt").Rets("12", ".txt"),
		tt.Args("What is new").Rets("What is new", ""),
		tt.Args("notes.md").Rets("notes", ".md"),
		tt.Args("logo.png").Rets("logo", ".png"),
	})
}
