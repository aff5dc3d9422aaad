// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "src.lessondeck.sh/pkg/store/storedefs"
)

const (
	deckA = "/lessons/swift.playground"
	deckB = "/lessons/go"
)

// TestBookmark tests the bookmark functionality of a Store.
func TestBookmark(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.Bookmark(deckA); !errors.Is(err, ErrNoBookmark) {
		t.Errorf("Bookmark on empty store -> error %v, want %v", err, ErrNoBookmark)
	}

	mustOK(t, s.SetBookmark(deckA, "1-basic"))
	mustOK(t, s.SetBookmark(deckB, "intro"))
	mustOK(t, s.SetBookmark(deckA, "03-collection"))

	for deck, want := range map[string]string{deckA: "03-collection", deckB: "intro"} {
		id, err := s.Bookmark(deck)
		if id != want || err != nil {
			t.Errorf("Bookmark(%q) -> (%q, %v), want (%q, nil)", deck, id, err, want)
		}
	}

	mustOK(t, s.DelBookmark(deckA))
	if _, err := s.Bookmark(deckA); !errors.Is(err, ErrNoBookmark) {
		t.Errorf("Bookmark after DelBookmark -> error %v, want %v", err, ErrNoBookmark)
	}
}

// TestVisit tests the visit history functionality of a Store.
func TestVisit(t *testing.T, s Store) {
	t.Helper()

	visits, err := s.Visits(deckA, 0)
	if len(visits) != 0 || err != nil {
		t.Errorf("Visits on empty store -> (%v, %v), want (empty, nil)", visits, err)
	}

	for i, id := range []string{"1-basic", "03-collection", "1-basic"} {
		seq, err := s.AddVisit(deckA, id)
		if seq != i+1 || err != nil {
			t.Errorf("AddVisit(%q) -> (%d, %v), want (%d, nil)", id, seq, err, i+1)
		}
	}
	if seq, err := s.AddVisit(deckB, "intro"); seq != 1 || err != nil {
		t.Errorf("AddVisit on another deck -> (%d, %v), want (1, nil)", seq, err)
	}

	ignoreTime := cmpopts.IgnoreFields(Visit{}, "Time")
	tests := []struct {
		n    int
		want []Visit
	}{
		{0, []Visit{{Seq: 3, ID: "1-basic"}, {Seq: 2, ID: "03-collection"}, {Seq: 1, ID: "1-basic"}}},
		{2, []Visit{{Seq: 3, ID: "1-basic"}, {Seq: 2, ID: "03-collection"}}},
		{10, []Visit{{Seq: 3, ID: "1-basic"}, {Seq: 2, ID: "03-collection"}, {Seq: 1, ID: "1-basic"}}},
	}
	for _, test := range tests {
		visits, err := s.Visits(deckA, test.n)
		if err != nil {
			t.Errorf("Visits(deckA, %d) -> error %v", test.n, err)
		}
		if diff := cmp.Diff(test.want, visits, ignoreTime); diff != "" {
			t.Errorf("Visits(deckA, %d) (-want +got):\n%s", test.n, diff)
		}
	}
	visits, err = s.Visits(deckA, 0)
	mustOK(t, err)
	for _, v := range visits {
		if v.Time.IsZero() {
			t.Errorf("visit %d has zero time", v.Seq)
		}
	}
}

// TestDeck tests the deck history functionality of a Store.
func TestDeck(t *testing.T, s Store) {
	t.Helper()

	decks, err := s.Decks(NoBlacklist)
	if len(decks) != 0 || err != nil {
		t.Errorf("Decks on empty store -> (%v, %v), want (empty, nil)", decks, err)
	}

	mustOK(t, s.AddDeck(deckA, 1))
	mustOK(t, s.AddDeck(deckB, 1))
	mustOK(t, s.AddDeck(deckA, 1))

	paths := func(decks []Deck) []string {
		var ps []string
		for _, d := range decks {
			ps = append(ps, d.Path)
		}
		return ps
	}
	decks, err = s.Decks(NoBlacklist)
	mustOK(t, err)
	if diff := cmp.Diff([]string{deckA, deckB}, paths(decks)); diff != "" {
		t.Errorf("Decks (-want +got):\n%s", diff)
	}
	if decks[0].Score <= decks[1].Score {
		t.Errorf("Decks returned scores %v, want descending", decks)
	}

	decks, err = s.Decks(map[string]struct{}{deckA: {}})
	mustOK(t, err)
	if diff := cmp.Diff([]string{deckB}, paths(decks)); diff != "" {
		t.Errorf("Decks with blacklist (-want +got):\n%s", diff)
	}

	mustOK(t, s.DelDeck(deckB))
	decks, err = s.Decks(NoBlacklist)
	mustOK(t, err)
	if diff := cmp.Diff([]string{deckA}, paths(decks)); diff != "" {
		t.Errorf("Decks after DelDeck (-want +got):\n%s", diff)
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
