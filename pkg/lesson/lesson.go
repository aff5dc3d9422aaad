// Package lesson defines the unit of content in a lesson deck and the raw
// source descriptors units are built from.
//
// A unit's body is opaque: nothing in this package (or anywhere else in the
// module) parses or runs the sample code a lesson contains.
package lesson

// Unit is one self-contained lesson. Units are built once when a deck is
// loaded and never mutated afterwards.
type Unit struct {
	// ID is unique within a deck. See Slugify for how it is derived.
	ID string
	// Title is the human-readable title.
	Title string
	// Order is the position key of the unit. It is only meaningful when
	// Numbered is true; unnumbered units sort after all numbered ones.
	Order    int
	Numbered bool
	// Body is the content of the lesson, kept verbatim.
	Body string

	// Name is the name of the descriptor the unit was built from.
	Name string
	// Lang is the language of code in the body, used as the info string of
	// code fences when rendering. It may be empty.
	Lang string
}

// Source is a raw descriptor of a lesson, as produced by a storage backend.
type Source struct {
	Name string
	Text string
	Meta Meta
}

// Meta contains optional overrides for values that are otherwise derived from
// the name of a Source. It is decoded from front matter or a manifest entry.
type Meta struct {
	ID    string `yaml:"id" toml:"id"`
	Title string `yaml:"title" toml:"title"`
	Order *int   `yaml:"order" toml:"order"`
	Lang  string `yaml:"lang" toml:"lang"`
}

// New builds a Unit from a Source, applying the overrides in its Meta.
func New(src Source) Unit {
	order, numbered, title := SplitName(src.Name)
	u := Unit{
		ID:       Slugify(src.Name),
		Title:    title,
		Order:    order,
		Numbered: numbered,
		Body:     src.Text,
		Name:     src.Name,
		Lang:     src.Meta.Lang,
	}
	if id := src.Meta.ID; IsValidID(id) {
		u.ID = id
	} else if id != "" {
		u.ID = Slugify(id)
	}
	if src.Meta.Title != "" {
		u.Title = src.Meta.Title
	}
	if src.Meta.Order != nil {
		u.Order, u.Numbered = *src.Meta.Order, true
	}
	return u
}

// Less reports whether a sorts before b in a deck. Numbered units come first
// in ascending order; unnumbered units follow in lexicographic order of their
// titles. Remaining ties are broken by ID.
func Less(a, b Unit) bool {
	if a.Numbered != b.Numbered {
		return a.Numbered
	}
	if a.Numbered {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
	} else if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}
