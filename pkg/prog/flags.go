package prog

import (
	"errors"
	"flag"
	"io"
)

// ParseOptions parses the options of a subcommand. Options may appear before,
// between and after positional arguments, and may be written as "--name value",
// "--name=value" or "-name value". An argument "--" ends the options. The
// declare function defines the options on the FlagSet.
//
// It returns the positional arguments. Parse errors are returned as BadUsage
// errors prefixed with the name of the subcommand.
func ParseOptions(name string, args []string, declare func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if declare != nil {
		declare(fs)
	}
	var positional []string
	for {
		err := fs.Parse(args)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				err = errors.New("flag provided but not defined: -h")
			}
			return nil, BadUsage(name + ": " + err.Error())
		}
		rest := fs.Args()
		consumed := args[:len(args)-len(rest)]
		if len(rest) == 0 || len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
