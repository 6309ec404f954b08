// Package search provides literal text search over document content.
//
// Matching is pure: functions take the text and query and return match
// positions as character offsets, leaving cursor movement and highlight
// state to the caller. Navigation wraps around the document in both
// directions.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// FindAll returns the character offsets of all non-overlapping matches of
// query in text, in ascending order. Matching is literal and scans left to
// right, so after a match the scan resumes past its end. An empty query
// matches nothing.
func FindAll(text, query string) []int {
	if query == "" {
		return nil
	}

	var matches []int
	queryChars := utf8.RuneCountInString(query)
	byteOff := 0
	charOff := 0

	for {
		i := strings.Index(text[byteOff:], query)
		if i < 0 {
			return matches
		}

		charOff += utf8.RuneCountInString(text[byteOff : byteOff+i])
		matches = append(matches, charOff)

		byteOff += i + len(query)
		charOff += queryChars
	}
}

// Next returns the first match at or after the given character offset.
// If no match follows, it wraps to the first match. Returns false only
// when matches is empty. Matches must be in ascending order as returned
// by FindAll.
func Next(matches []int, from int) (int, bool) {
	if len(matches) == 0 {
		return 0, false
	}

	i := sort.SearchInts(matches, from)
	if i == len(matches) {
		i = 0
	}
	return matches[i], true
}

// Prev returns the last match strictly before the given character offset.
// If no match precedes, it wraps to the last match. Returns false only
// when matches is empty.
func Prev(matches []int, from int) (int, bool) {
	if len(matches) == 0 {
		return 0, false
	}

	i := sort.SearchInts(matches, from)
	if i == 0 {
		i = len(matches)
	}
	return matches[i-1], true
}

// CurrentIndex returns the 1-based position of the match the cursor is on,
// for display as "n/total". A cursor inside a match selects that match;
// otherwise the next match at or after the cursor counts as current,
// wrapping to the first. Returns 0 when matches is empty or the query has
// no characters.
func CurrentIndex(matches []int, cursor, queryChars int) int {
	if len(matches) == 0 || queryChars <= 0 {
		return 0
	}

	for i, m := range matches {
		if cursor >= m && cursor < m+queryChars {
			return i + 1
		}
		if m >= cursor {
			return i + 1
		}
	}
	return 1
}
