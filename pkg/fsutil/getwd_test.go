//go:build !windows && !plan9

package fsutil

import (
	"testing"

	"src.lessondeck.sh/pkg/tt"
)

func TestTildeAbbr(t *testing.T) {
	t.Setenv("HOME", "/home/learner")

	tt.Test(t, tt.Fn("TildeAbbr", TildeAbbr), tt.Table{
		tt.Args("/home/learner").Rets("~"),
		tt.Args("/home/learner/decks/swift").Rets("~/decks/swift"),
		tt.Args("/home/learnerx/swift").Rets("/home/learnerx/swift"),
		tt.Args("/tmp/swift").Rets("/tmp/swift"),
	})
}

func TestTildeAbbr_RootHome(t *testing.T) {
	t.Setenv("HOME", "/")

	tt.Test(t, tt.Fn("TildeAbbr", TildeAbbr), tt.Table{
		tt.Args("/swift").Rets("/swift"),
	})
}
