package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mshioda/fude/internal/cliphist"
)

// clipItemLimit caps how many characters of an entry a picker row shows.
const clipItemLimit = 40

// ClipboardNav renders the clipboard picker: a header plus one row per
// visible entry, numbered within the window, with the selected entry
// marked. Returns false when the picker is closed or the history is
// empty.
func ClipboardNav(h *cliphist.History) (string, bool) {
	if !h.Visible() || h.Len() == 0 {
		return "", false
	}

	start, items := h.Window()
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Clipboard:")
	for i, item := range items {
		prefix := "  "
		if start+i == h.SelectedIndex() {
			prefix = "> "
		}
		lines = append(lines, fmt.Sprintf("%s[%d] %s", prefix, i+1, clipItem(item, clipItemLimit)))
	}
	return strings.Join(lines, "\n"), true
}

// clipItem flattens newlines to a visible escape and truncates to limit
// characters.
func clipItem(item string, limit int) string {
	flat := strings.ReplaceAll(item, "\n", `\n`)
	if utf8.RuneCountInString(flat) <= limit {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:limit])
}
