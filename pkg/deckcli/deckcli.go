// Package deckcli implements the commands of lessondeck that work with a deck:
// listing, showing, navigating and exporting units, and the opt-in bookmark
// and history commands backed by the store.
package deckcli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"src.lessondeck.sh/pkg/deck"
	"src.lessondeck.sh/pkg/logutil"
	"src.lessondeck.sh/pkg/prog"
	"src.lessondeck.sh/pkg/source"
	"src.lessondeck.sh/pkg/store"
)

var logger = logutil.GetLogger("[deckcli] ")

// Exit statuses of failed commands. Bad usage exits with 2 as well.
const (
	exitFailure   = 1
	exitNotFound  = 2
	exitBadFormat = 3
)

// Program is the deck subprogram.
type Program struct{}

type command struct {
	fn func(c *ctx, args []string) error
	// Whether the command needs the -db flag.
	needsDB bool
}

var commands = map[string]command{
	"list":    {fn: list},
	"show":    {fn: show},
	"next":    {fn: next},
	"prev":    {fn: prev},
	"export":  {fn: exportDeck},
	"mark":    {fn: mark, needsDB: true},
	"resume":  {fn: resume, needsDB: true},
	"history": {fn: history, needsDB: true},
	"decks":   {fn: decks, needsDB: true},
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("no command given")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return prog.BadUsage(fmt.Sprintf("unknown command %q (want one of %s)", args[0], commandNames()))
	}
	c := &ctx{fds: fds, flags: f, name: args[0]}
	if cmd.needsDB {
		if f.DB == "" {
			return prog.BadUsage(args[0] + ": -db is required")
		}
		st, err := store.Open(f.DB)
		if err != nil {
			return c.fail(exitFailure, err)
		}
		defer st.Close()
		c.store = st
	}
	return cmd.fn(c, args[1:])
}

// ctx carries the state of one command invocation.
type ctx struct {
	fds   [3]*os.File
	flags *prog.Flags
	name  string
	// Only set for commands that need the database.
	store store.DBStore
}

// fail prints a one-line diagnostic to stderr and returns an error that makes
// the program exit with the given status.
func (c *ctx) fail(exit int, err error) error {
	msg := strings.ReplaceAll(err.Error(), "\n", "; ")
	fmt.Fprintf(c.fds[2], "%s: %s\n", c.name, msg)
	return prog.Exit(exit)
}

// failLookup is like fail, with the exit status chosen by the kind of error
// returned from looking up a unit.
func (c *ctx) failLookup(err error) error {
	var notFound *deck.NotFoundError
	if errors.As(err, &notFound) {
		return c.fail(exitNotFound, err)
	}
	return c.fail(exitFailure, err)
}

// loadDeck opens the deck named by the -deck flag and builds its index.
// Failures are reported with fail.
func (c *ctx) loadDeck() (*deck.Index, source.Provider, error) {
	p, err := source.Open(c.flags.Deck)
	if err != nil {
		return nil, nil, c.fail(exitFailure, err)
	}
	r := deck.NewReloader(func() (*deck.Index, error) {
		srcs, err := source.Load(p)
		if err != nil {
			return nil, err
		}
		return deck.Build(srcs)
	})
	if err := r.Reload(); err != nil {
		return nil, nil, c.fail(exitFailure, err)
	}
	return r.Index(), p, nil
}

// deckKey returns the key the deck is stored under in the database, the
// absolute path of its source.
func (c *ctx) deckKey() string {
	abs, err := filepath.Abs(c.flags.Deck)
	if err != nil {
		logger.Printf("cannot make %q absolute: %v", c.flags.Deck, err)
		return filepath.Clean(c.flags.Deck)
	}
	return abs
}

func needArgs(name string, args []string, n int, what string) error {
	if len(args) != n {
		return prog.BadUsage(fmt.Sprintf("%s: need %s", name, what))
	}
	return nil
}
