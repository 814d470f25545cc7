package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "en": true, "for": true, "if": true, "in": true, "of": true,
	"on": true, "or": true, "the": true, "to": true, "v": true, "v.": true,
	"via": true, "vs": true, "vs.": true,
}

// Case title-cases s word by word.
//
// Words keep their existing capitalization when they have an upper-case
// letter past the first one (DJ, McDonald). Small words stay lower case
// unless they start or end the title. Text that is entirely upper case is
// lowered first. Whitespace is collapsed.
func Case(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	// Casers hold state, so they are not shared between calls.
	lower := cases.Lower(language.English)
	upperFirst := cases.Title(language.English, cases.NoLower)

	if isAllUpper(s) {
		for i, w := range words {
			words[i] = lower.String(w)
		}
	}

	last := len(words) - 1
	for i, w := range words {
		switch {
		case hasInnerUpper(w), startsWithDigit(w):
		case i > 0 && i < last && smallWords[lower.String(w)]:
			words[i] = lower.String(w)
		default:
			words[i] = upperFirst.String(w)
		}
	}
	return strings.Join(words, " ")
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func hasInnerUpper(w string) bool {
	seenLetter := false
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		if seenLetter && unicode.IsUpper(r) {
			return true
		}
		seenLetter = true
	}
	return false
}

func startsWithDigit(w string) bool {
	for _, r := range w {
		if unicode.IsDigit(r) {
			return true
		}
		if unicode.IsLetter(r) {
			return false
		}
	}
	return false
}
