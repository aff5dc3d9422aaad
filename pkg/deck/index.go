// Package deck implements the ordered lesson index and traversal over it.
//
// An Index is an immutable snapshot: once Build returns, nothing modifies it,
// so it may be shared between goroutines without locking. Rebuilding a deck
// means building a new Index (see Reloader).
package deck

import (
	"sort"

	"src.lessondeck.sh/pkg/lesson"
	"src.lessondeck.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[deck] ")

// Index is an ordered, immutable collection of lesson units.
type Index struct {
	units []lesson.Unit
	pos   map[string]int
}

// Build builds an Index from source descriptors. The order of sources does
// not matter; units are sorted with lesson.Less.
//
// It returns ErrEmptyDeck if sources is empty, and a *DuplicateUnitError if
// two sources yield the same ID. No Index is returned on error.
func Build(sources []lesson.Source) (*Index, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyDeck
	}
	units := make([]lesson.Unit, len(sources))
	byID := make(map[string]string, len(sources))
	for i, src := range sources {
		u := lesson.New(src)
		if first, ok := byID[u.ID]; ok {
			return nil, &DuplicateUnitError{ID: u.ID, First: first, Second: src.Name}
		}
		byID[u.ID] = src.Name
		units[i] = u
	}
	sort.Slice(units, func(i, j int) bool { return lesson.Less(units[i], units[j]) })

	pos := make(map[string]int, len(units))
	for i, u := range units {
		pos[u.ID] = i
	}
	logger.Printf("built index of %d units", len(units))
	return &Index{units, pos}, nil
}

// Len returns the number of units.
func (idx *Index) Len() int { return len(idx.units) }

// Get returns the unit with the given ID. The ID may also be given as a raw
// source name or title, such as "03. Collection"; it is normalized with
// lesson.Slugify when there is no exact match.
func (idx *Index) Get(id string) (lesson.Unit, error) {
	i, err := idx.Position(id)
	if err != nil {
		return lesson.Unit{}, err
	}
	return idx.units[i], nil
}

// Position returns the 0-based position of a unit, resolving id like Get.
func (idx *Index) Position(id string) (int, error) {
	if i, ok := idx.pos[id]; ok {
		return i, nil
	}
	if i, ok := idx.pos[lesson.Slugify(id)]; ok {
		return i, nil
	}
	return -1, &NotFoundError{id}
}

// All returns all units in deck order. The returned slice is a fresh copy,
// so callers may iterate over or modify it freely.
func (idx *Index) All() []lesson.Unit {
	return append([]lesson.Unit(nil), idx.units...)
}

// Each calls f for each unit in deck order until f returns false.
func (idx *Index) Each(f func(lesson.Unit) bool) {
	for _, u := range idx.units {
		if !f(u) {
			return
		}
	}
}

// First returns the first unit.
func (idx *Index) First() lesson.Unit { return idx.units[0] }

// Last returns the last unit.
func (idx *Index) Last() lesson.Unit { return idx.units[len(idx.units)-1] }
