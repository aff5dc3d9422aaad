package deckcli

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"src.lessondeck.sh/pkg/deck"
	"src.lessondeck.sh/pkg/export"
	"src.lessondeck.sh/pkg/fsutil"
	"src.lessondeck.sh/pkg/lesson"
	"src.lessondeck.sh/pkg/prog"
	"src.lessondeck.sh/pkg/render"
	"src.lessondeck.sh/pkg/store"
	"src.lessondeck.sh/pkg/store/storedefs"
	"src.lessondeck.sh/pkg/sys"
	"src.lessondeck.sh/pkg/ui"
)

var titleStyle = ui.Style{Bold: true}

func list(c *ctx, args []string) error {
	args, err := prog.ParseOptions(c.name, args, nil)
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 0, "no arguments"); err != nil {
		return err
	}
	idx, _, err := c.loadDeck()
	if err != nil {
		return err
	}
	tty := sys.IsATTY(c.fds[1])
	idx.Each(func(u lesson.Unit) bool {
		title := u.Title
		if tty {
			title = titleStyle.Apply(title)
		}
		fmt.Fprintf(c.fds[1], "%s\t%s\n", u.ID, title)
		return true
	})
	return nil
}

// renderOpts are the options shared by commands that render units.
type renderOpts struct {
	format string
	width  int
}

func (o *renderOpts) declare(dflt string) func(fs *flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.StringVar(&o.format, "format", dflt, "output format: plain, html or markdown")
		fs.IntVar(&o.width, "width", -1, "wrap plain output at this width; 0 disables wrapping")
	}
}

// renderer returns the Renderer for plain output written to stdout. A
// negative width means the width of the terminal, if stdout is one.
func (c *ctx) renderer(idx *deck.Index, width int) render.Renderer {
	if width < 0 {
		width = sys.TermWidth(c.fds[1])
	}
	return render.Renderer{
		Width: width,
		Style: sys.IsATTY(c.fds[1]),
		Links: render.DeckLinks(idx),
	}
}

func show(c *ctx, args []string) error {
	var opts renderOpts
	args, err := prog.ParseOptions(c.name, args, opts.declare("plain"))
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 1, "exactly one unit id"); err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return c.fail(exitBadFormat, err)
	}
	idx, _, err := c.loadDeck()
	if err != nil {
		return err
	}
	u, err := idx.Get(args[0])
	if err != nil {
		return c.failLookup(err)
	}
	if err := c.write(idx, u, format, opts.width); err != nil {
		return err
	}
	c.recordVisit(u)
	return nil
}

func (c *ctx) write(idx *deck.Index, u lesson.Unit, f render.Format, width int) error {
	text, err := c.renderer(idx, width).Render(u, f)
	if err != nil {
		return c.fail(exitBadFormat, err)
	}
	_, err = c.fds[1].WriteString(text)
	if err != nil {
		return c.fail(exitFailure, err)
	}
	return nil
}

// recordVisit adds a visit of u to the history when a database is in use.
// History is best effort: failures are only logged.
func (c *ctx) recordVisit(u lesson.Unit) {
	if c.flags.DB == "" {
		return
	}
	st := c.store
	if st == nil {
		var err error
		st, err = store.Open(c.flags.DB)
		if err != nil {
			logger.Printf("cannot record visit of %s: %v", u.ID, err)
			return
		}
		defer st.Close()
	}
	key := c.deckKey()
	if _, err := st.AddVisit(key, u.ID); err != nil {
		logger.Printf("cannot record visit of %s: %v", u.ID, err)
	}
	if err := st.AddDeck(key, 1); err != nil {
		logger.Printf("cannot update deck history: %v", err)
	}
}

// Printed by next and prev at the ends of the deck.
const (
	endMarker   = "<end>"
	startMarker = "<start>"
)

func next(c *ctx, args []string) error {
	return navigate(c, args, deck.Navigator.Next, deck.ErrEndOfDeck, endMarker)
}

func prev(c *ctx, args []string) error {
	return navigate(c, args, deck.Navigator.Previous, deck.ErrStartOfDeck, startMarker)
}

func navigate(c *ctx, args []string, step func(deck.Navigator, string) (lesson.Unit, error), boundary error, marker string) error {
	args, err := prog.ParseOptions(c.name, args, nil)
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 1, "exactly one unit id"); err != nil {
		return err
	}
	idx, _, err := c.loadDeck()
	if err != nil {
		return err
	}
	u, err := step(deck.NewNavigator(idx), args[0])
	switch {
	case errors.Is(err, boundary):
		fmt.Fprintln(c.fds[1], marker)
	case err != nil:
		return c.failLookup(err)
	default:
		fmt.Fprintln(c.fds[1], u.ID)
	}
	return nil
}

// Width of exported plain text.
const exportWidth = 80

func exportDeck(c *ctx, args []string) error {
	var opts renderOpts
	args, err := prog.ParseOptions(c.name, args, opts.declare("html"))
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 1, "exactly one output directory"); err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return c.fail(exitBadFormat, err)
	}
	if opts.width < 0 {
		opts.width = exportWidth
	}
	idx, p, err := c.loadDeck()
	if err != nil {
		return err
	}
	r := render.Renderer{Width: opts.width, Links: render.DeckLinks(idx)}
	if err := export.Deck(idx, p.Title(), args[0], format, r); err != nil {
		return c.fail(exitFailure, err)
	}
	return nil
}

func mark(c *ctx, args []string) error {
	args, err := prog.ParseOptions(c.name, args, nil)
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 1, "exactly one unit id"); err != nil {
		return err
	}
	idx, _, err := c.loadDeck()
	if err != nil {
		return err
	}
	u, err := idx.Get(args[0])
	if err != nil {
		return c.failLookup(err)
	}
	if err := c.store.SetBookmark(c.deckKey(), u.ID); err != nil {
		return c.fail(exitFailure, err)
	}
	return nil
}

func resume(c *ctx, args []string) error {
	var opts renderOpts
	args, err := prog.ParseOptions(c.name, args, opts.declare("plain"))
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 0, "no arguments"); err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return c.fail(exitBadFormat, err)
	}
	key := c.deckKey()
	id, err := c.store.Bookmark(key)
	if errors.Is(err, store.ErrNoBookmark) {
		return c.fail(exitNotFound, fmt.Errorf("%w for deck %s", err, fsutil.TildeAbbr(key)))
	} else if err != nil {
		return c.fail(exitFailure, err)
	}
	idx, _, err := c.loadDeck()
	if err != nil {
		return err
	}
	u, err := idx.Get(id)
	if err != nil {
		return c.failLookup(err)
	}
	if err := c.write(idx, u, format, opts.width); err != nil {
		return err
	}
	c.recordVisit(u)
	return nil
}

// Number of visits listed by history by default.
const defaultHistory = 10

func history(c *ctx, args []string) error {
	var n int
	args, err := prog.ParseOptions(c.name, args, func(fs *flag.FlagSet) {
		fs.IntVar(&n, "n", defaultHistory, "number of visits to list; 0 lists all")
	})
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 0, "no arguments"); err != nil {
		return err
	}
	visits, err := c.store.Visits(c.deckKey(), n)
	if err != nil {
		return c.fail(exitFailure, err)
	}
	for _, v := range visits {
		fmt.Fprintf(c.fds[1], "%d\t%s\t%s\n", v.Seq, v.ID, v.Time.Local().Format(time.RFC3339))
	}
	return nil
}

func decks(c *ctx, args []string) error {
	args, err := prog.ParseOptions(c.name, args, nil)
	if err != nil {
		return err
	}
	if err := needArgs(c.name, args, 0, "no arguments"); err != nil {
		return err
	}
	ds, err := c.store.Decks(storedefs.NoBlacklist)
	if err != nil {
		return c.fail(exitFailure, err)
	}
	for _, d := range ds {
		fmt.Fprintf(c.fds[1], "%.2f\t%s\n", d.Score, fsutil.TildeAbbr(d.Path))
	}
	return nil
}
