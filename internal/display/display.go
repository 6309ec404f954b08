// Package display builds the presentation strings the frontend draws:
// window title, tab bar, line-number gutter, search and clipboard status
// lines, and per-line selection spans.
//
// Everything here is a pure function of document and picker state. The
// package formats; it never mutates.
package display

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mshioda/fude/internal/engine"
)

// Title returns the window title for a document: the file name with a
// dirty marker, the encoding label, and the 1-based cursor position.
func Title(d *engine.Document) string {
	dirty := ""
	if d.Dirty() {
		dirty = "*"
	}
	p := d.CursorPoint()
	return fmt.Sprintf("%s%s  %s (Ln %d, Col %d)",
		docName(d), dirty, d.Encoding(), p.Line+1, p.Column+1)
}

// DocLabel returns the tab label for a document: the file name, with a
// trailing marker when there are unsaved changes.
func DocLabel(d *engine.Document) string {
	if d.Dirty() {
		return docName(d) + "*"
	}
	return docName(d)
}

// docName is the base file name, or "Untitled" for an unsaved document.
func docName(d *engine.Document) string {
	if p := d.Path(); p != "" {
		return filepath.Base(p)
	}
	return "Untitled"
}

// TabBar renders one numbered label per open document, bracketing the
// active one.
func TabBar(docs []*engine.Document, active int) string {
	parts := make([]string, 0, len(docs))
	for i, d := range docs {
		label := fmt.Sprintf("%d:%s", i+1, DocLabel(d))
		if i == active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// LineNumbers returns the gutter text for a line count, one number per
// line right-aligned to the widest, and the digit width used.
func LineNumbers(lineCount int) (string, int) {
	if lineCount < 1 {
		lineCount = 1
	}
	digits := len(strconv.Itoa(lineCount))

	var b strings.Builder
	b.Grow(lineCount * (digits + 1))
	for line := 1; line <= lineCount; line++ {
		if line > 1 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d", digits, line)
	}
	return b.String(), digits
}
