// Lessonmd renders one lesson body read from stdin, without a deck. It is
// useful for checking how a lesson will look before adding it to a deck.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"src.lessondeck.sh/pkg/md"
	"src.lessondeck.sh/pkg/playground"
	"src.lessondeck.sh/pkg/render"
	"src.lessondeck.sh/pkg/sys"
)

func main() {
	var (
		text  = flag.Bool("text", false, "render as plain text instead of HTML")
		trace = flag.Bool("trace", false, "trace internal output by parser")
		lang  = flag.String("lang", "", "treat input as a playground page in this language")
		width = flag.Int("width", -1, "wrap plain text at this width; defaults to the terminal width")
	)
	flag.Parse()
	if *text && *trace {
		fmt.Fprintln(os.Stderr, "-text and -trace are mutually exclusive")
		os.Exit(1)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	markdown := string(data)
	if !render.IsMarkdown(*lang) {
		markdown = playground.ToMarkdown(markdown, *lang)
	}

	var codec md.StringerCodec
	switch {
	case *text:
		if *width < 0 {
			*width = sys.TermWidth(os.Stdout)
		}
		codec = &md.TextCodec{Width: *width, Style: sys.IsATTY(os.Stdout)}
	case *trace:
		codec = &md.TraceCodec{}
	default:
		codec = &md.HTMLCodec{}
	}
	fmt.Print(md.RenderString(markdown, codec))
}
