// Package title cleans up song titles and artist names.
package title

import "strings"

// qualifiers are dropped from titles. Only the listed spellings are matched.
var qualifiers = []string{
	" (Clean)", " (clean)",
	" (Dirty)", " (dirty)",
	" (Original Mix)", " (original mix)",
}

// qualifierOpeners keep the parenthesis but drop the qualifier in front of it.
var qualifierOpeners = []string{
	" (Dirty-", " (dirty-",
	" (Clean-", " (clean-",
}

const (
	separator = " - "
	openGroup = " ("
	closeMark = ")"
)

// Normalize rewrites a raw title into the "Title (Remix)" convention.
//
// Release qualifiers such as "(Clean)" are removed. The first " - "
// separator is folded into a parenthetical group: into the group that
// already surrounds it, or into a new group that closes before the next
// existing group or at the end of the title. Whitespace runs are collapsed.
func Normalize(raw string) string {
	s := raw
	for _, q := range qualifiers {
		s = strings.ReplaceAll(s, q, "")
	}
	for _, q := range qualifierOpeners {
		s = strings.ReplaceAll(s, q, openGroup)
	}

	if dash := strings.Index(s, separator); dash >= 0 {
		open := strings.Index(s, openGroup)
		end := strings.Index(s, closeMark)
		switch {
		case open >= 0 && end >= 0 && open < dash && dash < end:
			s = strings.Replace(s, separator, " ", 1)
		case open >= 0 && end >= 0:
			rest := s[dash:]
			if next := strings.Index(rest, openGroup); next >= 0 && strings.Contains(rest, closeMark) {
				at := dash + next
				s = s[:at] + closeMark + s[at:]
			} else {
				s += closeMark
			}
			s = strings.Replace(s, separator, openGroup, 1)
		default:
			s = strings.Replace(s, separator, openGroup, 1) + closeMark
		}
	}

	return CollapseSpace(s)
}

// CollapseSpace joins the whitespace-separated words of s with single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
