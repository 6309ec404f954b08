package display

import (
	"fmt"
	"unicode/utf8"

	"github.com/mshioda/fude/internal/engine/search"
)

// navHint trails every search status line.
const navHint = " (Enter: next, Shift+Enter: prev)"

// SearchBar renders the search input line. While the input method is
// composing, the uncommitted fragment follows the query; composing also
// forces the trailing space so an empty in-progress query still shows an
// input area.
func SearchBar(query, preedit string, composing bool) string {
	if query == "" && !composing {
		return "Search:"
	}
	return "Search: " + query + preedit
}

// SearchNav renders the match-position line under the search bar. query
// and preedit form the effective query the user is looking at;
// resultQuery, matches, and pending describe the most recent search
// pass, which may trail the input while typing.
func SearchNav(cursor int, query, preedit, resultQuery string, matches []int, pending bool) string {
	effective := query + preedit
	if effective == "" {
		return "Matches: 0/0" + navHint
	}
	if pending || resultQuery != effective {
		return "Matches: --/--  Searching..." + navHint
	}

	current := search.CurrentIndex(matches, cursor, utf8.RuneCountInString(effective))
	return fmt.Sprintf("Matches: %d/%d%s", current, len(matches), navHint)
}
