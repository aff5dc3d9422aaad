package lesson

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackID is the ID given to a name that has no letters or digits at all.
const FallbackID = "unit"

var (
	stripMarks = transform.Chain(
		norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	fold = cases.Fold()
)

// IsValidID reports whether an explicit ID can be used as it is. A valid ID
// starts with a letter or digit, holds only letters, digits, "-", "_" and
// ".", and has no "..". IDs are used as file names, so an invalid override is
// slugified instead.
func IsValidID(id string) bool {
	if id == "" || strings.Contains(id, "..") {
		return false
	}
	for i, r := range id {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		case i > 0 && (r == '-' || r == '_' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Slugify normalizes a name into an ID. The name is decomposed, stripped of
// combining marks and case-folded; every run of characters that are neither
// letters nor digits becomes a single "-".
//
//	Slugify("03. Collection") == "03-collection"
//	Slugify("Café Crème") == "cafe-creme"
func Slugify(name string) string {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}
	s = fold.String(s)

	var sb strings.Builder
	pendingDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	if sb.Len() == 0 {
		return FallbackID
	}
	return sb.String()
}

// SplitName splits a descriptor name into its leading numeric token and the
// remaining title. The separator after the number (dots, dashes, underscores,
// closing parens and spaces) is dropped.
//
//	SplitName("03. Collection") == (3, true, "Collection")
//	SplitName("1.Basic") == (1, true, "Basic")
//	SplitName("What is new") == (0, false, "What is new")
//
// A name that consists of only a number keeps the whole name as its title.
func SplitName(name string) (order int, numbered bool, title string) {
	trimmed := strings.TrimLeftFunc(name, unicode.IsSpace)
	i := 0
	for i < len(trimmed) && '0' <= trimmed[i] && trimmed[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false, strings.TrimSpace(name)
	}
	n, err := strconv.Atoi(trimmed[:i])
	if err != nil {
		// Too many digits to be a position; treat it as part of the title.
		return 0, false, strings.TrimSpace(name)
	}
	title = strings.TrimLeft(trimmed[i:], ".-_) \t")
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(name)
	}
	return n, true, title
}
