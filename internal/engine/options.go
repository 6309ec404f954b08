package engine

import (
	"github.com/mshioda/fude/internal/engine/history"
	"github.com/mshioda/fude/internal/textenc"
)

// DefaultMaxUndoEntries is the undo depth used when not configured.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial text of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithPath associates the document with a file path.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithEncoding sets the on-disk encoding used when saving.
func WithEncoding(enc textenc.Encoding) Option {
	return func(d *Document) {
		d.enc = enc
	}
}
