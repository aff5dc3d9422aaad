package deck

import "src.lessondeck.sh/pkg/lesson"

// Navigator resolves the units adjacent to a given unit. It holds no state
// beyond the Index it reads from.
type Navigator struct {
	idx *Index
}

// NewNavigator returns a Navigator over idx.
func NewNavigator(idx *Index) Navigator { return Navigator{idx} }

// Next returns the unit after id. It returns ErrEndOfDeck if id is the last
// unit, and a *NotFoundError if id is not in the deck.
func (n Navigator) Next(id string) (lesson.Unit, error) {
	i, err := n.idx.Position(id)
	if err != nil {
		return lesson.Unit{}, err
	}
	if i == len(n.idx.units)-1 {
		return lesson.Unit{}, ErrEndOfDeck
	}
	return n.idx.units[i+1], nil
}

// Previous returns the unit before id. It returns ErrStartOfDeck if id is the
// first unit, and a *NotFoundError if id is not in the deck.
func (n Navigator) Previous(id string) (lesson.Unit, error) {
	i, err := n.idx.Position(id)
	if err != nil {
		return lesson.Unit{}, err
	}
	if i == 0 {
		return lesson.Unit{}, ErrStartOfDeck
	}
	return n.idx.units[i-1], nil
}
