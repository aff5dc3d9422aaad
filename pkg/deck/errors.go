package deck

import (
	"errors"
	"fmt"
)

// Boundary sentinels returned by Navigator. They mark the ends of a deck and
// are not failures.
var (
	ErrEndOfDeck   = errors.New("end of deck")
	ErrStartOfDeck = errors.New("start of deck")
)

// ErrEmptyDeck is returned by Build when there are no sources.
var ErrEmptyDeck = errors.New("deck has no units")

// DuplicateUnitError is returned by Build when two sources normalize to the
// same ID.
type DuplicateUnitError struct {
	ID string
	// Names of the two sources.
	First, Second string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("duplicate unit id %q: %q and %q", e.ID, e.First, e.Second)
}

// NotFoundError is returned when looking up an ID that is not in the deck.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no unit with id %q", e.ID)
}
