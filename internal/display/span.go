package display

import (
	"github.com/mattn/go-runewidth"
	"github.com/mshioda/fude/internal/engine"
)

// SelectionSpan is one line's slice of a selection, in character
// columns with the end exclusive.
type SelectionSpan struct {
	Line     int
	StartCol int
	EndCol   int
}

// SelectionSpans splits the document selection into per-line column
// spans for highlight rendering. The first line starts at the selection,
// the last ends at it, and full middle lines span their whole length.
// Lines where the selection covers no characters produce no span.
func SelectionSpans(d *engine.Document) []SelectionSpan {
	if !d.HasSelection() {
		return nil
	}

	r := d.SelectedRange()
	start := d.OffsetToPoint(r.Start)
	end := d.OffsetToPoint(r.End)

	var spans []SelectionSpan
	for line := start.Line; line <= end.Line; line++ {
		startCol := 0
		endCol := d.LineLen(line)
		if line == start.Line {
			startCol = start.Column
		}
		if line == end.Line {
			endCol = end.Column
		}
		if endCol > startCol {
			spans = append(spans, SelectionSpan{Line: line, StartCol: startCol, EndCol: endCol})
		}
	}
	return spans
}

// VisualColumn returns the display cell of a character column in a line,
// counting East Asian wide characters as two cells and advancing tabs to
// the next stop. A tabWidth of zero or less uses 4.
func VisualColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	w := 0
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			w += tabWidth - w%tabWidth
		} else {
			w += runewidth.RuneWidth(r)
		}
		i++
	}
	return w
}

// PointForOffset locates a character offset within arbitrary text as a
// line/column position. Rendering uses it to place the IME caret inside
// DisplayText, which the document's own offset mapping does not cover
// while a composition is active.
func PointForOffset(text string, offset int) engine.Point {
	line, col := 0, 0
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		i++
	}
	return engine.Point{Line: line, Column: col}
}
