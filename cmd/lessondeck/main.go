// Lessondeck loads a deck of lessons from a directory, a playground or a
// manifest, and lets you list, read, navigate and export its units from the
// command line.
package main

import (
	"os"

	"src.lessondeck.sh/pkg/buildinfo"
	"src.lessondeck.sh/pkg/deckcli"
	"src.lessondeck.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, deckcli.Program{})))
}
