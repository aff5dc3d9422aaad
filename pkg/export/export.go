// Package export writes a rendered deck to a directory.
package export

import (
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"

	"src.lessondeck.sh/pkg/deck"
	"src.lessondeck.sh/pkg/logutil"
	"src.lessondeck.sh/pkg/render"
)

var logger = logutil.GetLogger("[export] ")

// IndexName is the name of the index page, without extension. It starts with
// an underscore, which no unit ID does.
const IndexName = "_index"

type unitDot struct {
	ID    string
	Title string
	File  string
	// 1-based position in the deck.
	Number int
}

type pageDot struct {
	DeckTitle string
	Index     string
	Unit      unitDot
	Body      htmltemplate.HTML
	Prev      *unitDot
	Next      *unitDot
}

type indexDot struct {
	Title string
	Units []unitDot
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// Deck renders every unit of idx in format f with r and writes it to
// <dir>/<id><ext>, followed by an index page <dir>/_index<ext> listing the
// units in deck order. HTML pages link to the index and to the adjacent
// units. The directory is created if it does not exist.
func Deck(idx *deck.Index, title, dir string, f render.Format, r render.Renderer) error {
	if f.Ext() == "" {
		return &render.UnsupportedFormatError{Format: f.String()}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	units := idx.All()
	dots := make([]unitDot, len(units))
	for i, u := range units {
		dots[i] = unitDot{u.ID, u.Title, u.ID + f.Ext(), i + 1}
	}
	for i, u := range units {
		out, err := r.Render(u, f)
		if err != nil {
			return err
		}
		fname := filepath.Join(dir, dots[i].File)
		if f == render.HTML {
			pd := pageDot{DeckTitle: title, Index: IndexName + f.Ext(),
				Unit: dots[i], Body: htmltemplate.HTML(out)}
			if i > 0 {
				pd.Prev = &dots[i-1]
			}
			if i < len(dots)-1 {
				pd.Next = &dots[i+1]
			}
			err = executeToFile(pageTemplate, pd, fname)
		} else {
			err = os.WriteFile(fname, []byte(out), 0o644)
		}
		if err != nil {
			return err
		}
	}

	err := executeToFile(indexTemplates[f], indexDot{title, dots},
		filepath.Join(dir, IndexName+f.Ext()))
	if err != nil {
		return err
	}
	logger.Printf("exported %d units to %s as %s", len(units), dir, f)
	return nil
}

func executeToFile(t executor, data any, fname string) error {
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	err = t.Execute(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}
