// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// do not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoBookmark is returned by Bookmark when no bookmark is set for a deck.
var ErrNoBookmark = errors.New("no bookmark")

// NoBlacklist is an empty blacklist, to be used in Decks.
var NoBlacklist = map[string]struct{}{}

// Store is an interface satisfied by the storage service. Decks are
// identified by the absolute path of their source.
type Store interface {
	SetBookmark(deck, id string) error
	Bookmark(deck string) (string, error)
	DelBookmark(deck string) error

	AddVisit(deck, id string) (int, error)
	Visits(deck string, n int) ([]Visit, error)

	AddDeck(deck string, incFactor float64) error
	DelDeck(deck string) error
	Decks(blacklist map[string]struct{}) ([]Deck, error)

	Close() error
}

// Visit is an entry in the visit history of a deck.
type Visit struct {
	Seq  int
	ID   string
	Time time.Time
}

// Deck is an entry in the deck history.
type Deck struct {
	Path  string
	Score float64
}
