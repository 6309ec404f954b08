package engine

import (
	"unicode/utf8"

	"github.com/mshioda/fude/internal/engine/history"
	"github.com/mshioda/fude/internal/engine/rope"
	"github.com/mshioda/fude/internal/engine/search"
	"github.com/mshioda/fude/internal/textenc"
)

// Point represents a line/column position.
type Point = rope.Point

// Span is a byte range, as the windowing system reports the input
// method's sub-cursor within preedit text.
type Span struct {
	Start, End int
}

// Preedit is an uncommitted IME composition overlay. Text is displayed at
// the cursor but is not part of the document until explicitly committed.
// Cursor is the byte range of the clause under conversion within Text,
// valid when HasCursor is set.
type Preedit struct {
	Text      string
	Cursor    Span
	HasCursor bool
}

// Document is the facade for a single open text document. It combines the
// rope buffer, cursor and selection state, undo history, the composition
// overlay, and file metadata into one synchronous API.
//
// A Document is owned by a single goroutine. Position arguments are
// character offsets and are clamped to the buffer, so in-memory operations
// never fail; errors only arise from encoding and decoding.
type Document struct {
	buf  rope.Rope
	sel  Selection
	hist *history.History
	pre  *Preedit

	// File metadata.
	path  string
	enc   textenc.Encoding
	dirty bool

	// Configuration.
	maxUndoEntries int
	initContent    string
}

// New creates a Document with the given options.
func New(opts ...Option) *Document {
	d := &Document{
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.initContent != "" {
		d.buf = rope.FromString(d.initContent)
	} else {
		d.buf = rope.New()
	}
	d.sel = NewCursorSelection(0)
	d.hist = history.New(d.maxUndoEntries)

	return d
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content.
func (d *Document) Text() string {
	return d.buf.String()
}

// Slice returns the text in [start, end), clamped to the buffer.
func (d *Document) Slice(start, end int) string {
	return d.buf.Slice(start, end)
}

// Len returns the document length in characters.
func (d *Document) Len() int {
	return d.buf.Len()
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return d.buf.IsEmpty()
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return d.buf.LineCount()
}

// LineText returns the text of a line without its trailing newline.
func (d *Document) LineText(line int) string {
	return d.buf.LineText(line)
}

// LineLen returns the length of a line in characters, excluding the newline.
func (d *Document) LineLen(line int) int {
	return d.buf.LineLen(line)
}

// LineStart returns the character offset where a line begins.
func (d *Document) LineStart(line int) int {
	return d.buf.LineStart(line)
}

// LineEnd returns the character offset of a line's end, before the newline.
func (d *Document) LineEnd(line int) int {
	return d.buf.LineEnd(line)
}

// OffsetToPoint converts a character offset to a line/column position.
func (d *Document) OffsetToPoint(offset int) Point {
	return d.buf.OffsetToPoint(offset)
}

// PointToOffset converts a line/column position to a character offset.
func (d *Document) PointToOffset(p Point) int {
	return d.buf.PointToOffset(p)
}

// Snapshot returns the current rope. Ropes are immutable, so the snapshot
// stays valid while the document keeps editing.
func (d *Document) Snapshot() rope.Rope {
	return d.buf
}

// ============================================================================
// Cursor and Selection
// ============================================================================

// Cursor returns the cursor position as a character offset.
func (d *Document) Cursor() int {
	return d.sel.Head
}

// CursorPoint returns the cursor position as line/column.
func (d *Document) CursorPoint() Point {
	return d.buf.OffsetToPoint(d.sel.Head)
}

// Selection returns the current selection.
func (d *Document) Selection() Selection {
	return d.sel
}

// HasSelection returns true if the selection has an extent.
func (d *Document) HasSelection() bool {
	return !d.sel.IsEmpty()
}

// SelectedRange returns the selected span, normalized.
func (d *Document) SelectedRange() Range {
	return d.sel.Range()
}

// SelectedText returns the selected text, or "" without a selection.
func (d *Document) SelectedText() string {
	r := d.sel.Range()
	return d.buf.Slice(r.Start, r.End)
}

// SetCursor moves the cursor to a character offset, clamped to the buffer.
// With extend the anchor holds and the selection grows; otherwise the
// selection collapses to the new position.
func (d *Document) SetCursor(offset int, extend bool) {
	d.moveHead(d.clampOffset(offset), extend)
}

// SetCursorLineCol moves the cursor to a line/column position, clamping
// the line to the document and the column to the line. Reports whether
// the cursor or selection changed.
func (d *Document) SetCursorLineCol(line, col int, extend bool) bool {
	before := d.sel
	off := d.buf.PointToOffset(Point{Line: line, Column: col})
	d.moveHead(off, extend)
	return d.sel != before
}

// Select sets an explicit anchor and head, both clamped to the buffer.
func (d *Document) Select(anchor, head int) {
	d.sel = NewSelection(anchor, head).Clamp(d.buf.Len())
}

// SelectAll selects the whole document with the cursor at the end.
// Reports whether the selection changed.
func (d *Document) SelectAll() bool {
	before := d.sel
	d.sel = NewSelection(0, d.buf.Len())
	return d.sel != before
}

// MoveLeft moves the cursor one character left. Without extend an existing
// selection collapses to its start instead of moving.
func (d *Document) MoveLeft(extend bool) {
	if !extend && !d.sel.IsEmpty() {
		d.sel = d.sel.CollapseToStart()
	} else {
		d.moveHead(d.clampOffset(d.sel.Head-1), extend)
	}
}

// MoveRight moves the cursor one character right. Without extend an
// existing selection collapses to its end instead of moving.
func (d *Document) MoveRight(extend bool) {
	if !extend && !d.sel.IsEmpty() {
		d.sel = d.sel.CollapseToEnd()
	} else {
		d.moveHead(d.clampOffset(d.sel.Head+1), extend)
	}
}

// MoveUp moves the cursor one line up, clamping the column to the
// target line.
func (d *Document) MoveUp(extend bool) {
	d.moveVertical(-1, extend)
}

// MoveDown moves the cursor one line down, clamping the column to the
// target line.
func (d *Document) MoveDown(extend bool) {
	d.moveVertical(1, extend)
}

// moveVertical moves the head by one line, carrying the current column
// clamped against the target line. The clamped column is where the
// cursor lands; a later move continues from it, so crossing a short
// line shortens the column for good. At the first and last line the
// cursor stays where it is.
func (d *Document) moveVertical(delta int, extend bool) {
	p := d.buf.OffsetToPoint(d.sel.Head)

	line := p.Line + delta
	if line >= 0 && line < d.buf.LineCount() {
		off := d.buf.PointToOffset(Point{Line: line, Column: p.Column})
		d.moveHead(off, extend)
	} else if !extend {
		d.sel = d.sel.MoveTo(d.sel.Head)
	}
}

// MoveLineStart moves the cursor to the beginning of its line.
func (d *Document) MoveLineStart(extend bool) {
	p := d.buf.OffsetToPoint(d.sel.Head)
	d.moveHead(d.buf.LineStart(p.Line), extend)
}

// MoveLineEnd moves the cursor to the end of its line, before the newline.
func (d *Document) MoveLineEnd(extend bool) {
	p := d.buf.OffsetToPoint(d.sel.Head)
	d.moveHead(d.buf.LineEnd(p.Line), extend)
}

// MoveDocStart moves the cursor to the beginning of the document.
func (d *Document) MoveDocStart(extend bool) {
	d.moveHead(0, extend)
}

// MoveDocEnd moves the cursor to the end of the document.
func (d *Document) MoveDocEnd(extend bool) {
	d.moveHead(d.buf.Len(), extend)
}

func (d *Document) moveHead(offset int, extend bool) {
	if extend {
		d.sel = d.sel.Extend(offset)
	} else {
		d.sel = d.sel.MoveTo(offset)
	}
}

func (d *Document) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if max := d.buf.Len(); offset > max {
		return max
	}
	return offset
}

// ============================================================================
// Mutations
// ============================================================================

// InsertText inserts text at the cursor. With a selection the selected
// text is replaced in a single history entry. An active composition
// overlay is discarded; composed text arrives through CommitPreedit.
func (d *Document) InsertText(text string) {
	d.pre = nil

	if text == "" {
		return
	}

	if !d.sel.IsEmpty() {
		d.replaceSelection(text)
		return
	}

	at := d.sel.Head
	d.apply(history.Edit{
		Kind:         history.Insert,
		Offset:       at,
		Inserted:     text,
		CursorBefore: at,
		CursorAfter:  at + utf8.RuneCountInString(text),
	})
}

// Backspace deletes the selection, or the character before the cursor.
// At the start of the document it does nothing.
func (d *Document) Backspace() {
	if !d.sel.IsEmpty() {
		d.DeleteSelection()
		return
	}

	at := d.sel.Head
	if at == 0 {
		return
	}

	d.apply(history.Edit{
		Kind:         history.Delete,
		Offset:       at - 1,
		Deleted:      d.buf.Slice(at-1, at),
		CursorBefore: at,
		CursorAfter:  at - 1,
	})
}

// DeleteForward deletes the selection, or the character after the cursor.
// At the end of the document it does nothing.
func (d *Document) DeleteForward() {
	if !d.sel.IsEmpty() {
		d.DeleteSelection()
		return
	}

	at := d.sel.Head
	if at >= d.buf.Len() {
		return
	}

	d.apply(history.Edit{
		Kind:         history.Delete,
		Offset:       at,
		Deleted:      d.buf.Slice(at, at+1),
		CursorBefore: at,
		CursorAfter:  at,
	})
}

// DeleteSelection removes the selected text as a single history entry.
// Reports false without a selection, recording nothing.
func (d *Document) DeleteSelection() bool {
	if d.sel.IsEmpty() {
		return false
	}

	r := d.sel.Range()
	d.apply(history.Edit{
		Kind:         history.Delete,
		Offset:       r.Start,
		Deleted:      d.buf.Slice(r.Start, r.End),
		CursorBefore: d.sel.Head,
		CursorAfter:  r.Start,
	})
	return true
}

// replaceSelection swaps the selected text for new text as one Replace
// entry, so a single undo restores both the text and the selection's span.
func (d *Document) replaceSelection(text string) {
	r := d.sel.Range()
	d.apply(history.Edit{
		Kind:         history.Replace,
		Offset:       r.Start,
		Deleted:      d.buf.Slice(r.Start, r.End),
		Inserted:     text,
		CursorBefore: d.sel.Head,
		CursorAfter:  r.Start + utf8.RuneCountInString(text),
	})
}

// apply performs a forward edit, records it, and settles cursor and flags.
func (d *Document) apply(e history.Edit) {
	d.applyForward(e)
	d.hist.Push(e)
	d.sel = NewCursorSelection(e.CursorAfter)
	d.dirty = true
}

func (d *Document) applyForward(e history.Edit) {
	switch e.Kind {
	case history.Insert:
		d.buf = d.buf.Insert(e.Offset, e.Inserted)
	case history.Delete:
		d.buf = d.buf.Delete(e.Offset, e.Offset+utf8.RuneCountInString(e.Deleted))
	case history.Replace:
		d.buf = d.buf.Replace(e.Offset, e.Offset+utf8.RuneCountInString(e.Deleted), e.Inserted)
	}
}

func (d *Document) applyBackward(e history.Edit) {
	switch e.Kind {
	case history.Insert:
		d.buf = d.buf.Delete(e.Offset, e.Offset+utf8.RuneCountInString(e.Inserted))
	case history.Delete:
		d.buf = d.buf.Insert(e.Offset, e.Deleted)
	case history.Replace:
		d.buf = d.buf.Replace(e.Offset, e.Offset+utf8.RuneCountInString(e.Inserted), e.Deleted)
	}
}

// ============================================================================
// Undo and Redo
// ============================================================================

// Undo reverses the most recent edit and restores the cursor to where it
// was before that edit. Any composition overlay is dropped. Returns false
// when there is nothing to undo.
func (d *Document) Undo() bool {
	d.pre = nil

	e, ok := d.hist.Undo()
	if !ok {
		return false
	}

	d.applyBackward(e)
	d.sel = NewCursorSelection(e.CursorBefore)
	d.dirty = true
	return true
}

// Redo re-applies the most recently undone edit and restores the cursor
// to its post-edit position. Any composition overlay is dropped. Returns
// false when there is nothing to redo.
func (d *Document) Redo() bool {
	d.pre = nil

	e, ok := d.hist.Redo()
	if !ok {
		return false
	}

	d.applyForward(e)
	d.sel = NewCursorSelection(e.CursorAfter)
	d.dirty = true
	return true
}

// CanUndo returns true if undo is available.
func (d *Document) CanUndo() bool {
	return d.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (d *Document) CanRedo() bool {
	return d.hist.CanRedo()
}

// ============================================================================
// Composition Overlay
// ============================================================================

// SetPreedit replaces the composition overlay. Empty text clears it.
// cursor, when non-nil, is the input method's sub-cursor byte range within
// text, clamped to text. Replacing the overlay discards the previous
// fragment; nothing is committed implicitly.
func (d *Document) SetPreedit(text string, cursor *Span) {
	if text == "" {
		d.pre = nil
		return
	}

	p := &Preedit{Text: text}
	if cursor != nil {
		c := *cursor
		n := len(text)
		if c.Start < 0 {
			c.Start = 0
		} else if c.Start > n {
			c.Start = n
		}
		if c.End < c.Start {
			c.End = c.Start
		} else if c.End > n {
			c.End = n
		}
		p.Cursor = c
		p.HasCursor = true
	}
	d.pre = p
}

// Preedit returns the active composition overlay, if any.
func (d *Document) Preedit() (Preedit, bool) {
	if d.pre == nil {
		return Preedit{}, false
	}
	return *d.pre, true
}

// CommitPreedit clears the composition overlay, then inserts the final
// composed text through the normal edit path, so a commit is a single
// undoable edit. The input method supplies the text; it need not match
// the overlay being cleared.
func (d *Document) CommitPreedit(text string) {
	d.pre = nil
	d.InsertText(text)
}

// ClearPreedit drops the composition overlay without touching the text.
func (d *Document) ClearPreedit() {
	d.pre = nil
}

// DisplayText returns the text the rendering layer should draw: the
// buffer content with any composition fragment spliced in at the cursor.
// The buffer itself is unchanged.
func (d *Document) DisplayText() string {
	if d.pre == nil {
		return d.buf.String()
	}

	at := d.sel.Head
	return d.buf.Slice(0, at) + d.pre.Text + d.buf.Slice(at, d.buf.Len())
}

// IMECursorChar returns the character offset in DisplayText the IME
// candidate window should anchor to: the cursor, advanced past the clause
// under conversion when the input method reported a sub-cursor.
func (d *Document) IMECursorChar() int {
	at := d.sel.Head
	if d.pre != nil && d.pre.HasCursor {
		at += utf8.RuneCountInString(d.pre.Text[:d.pre.Cursor.End])
	}
	return at
}

// ============================================================================
// Search
// ============================================================================

// FindNext returns the position of the first occurrence of query at or
// after start, wrapping past the end of the document. False when query
// is empty or does not occur.
func (d *Document) FindNext(query string, start int) (int, bool) {
	return search.Next(search.FindAll(d.buf.String(), query), start)
}

// FindPrev returns the position of the last occurrence of query strictly
// before start, wrapping to the final occurrence. False when query is
// empty or does not occur.
func (d *Document) FindPrev(query string, start int) (int, bool) {
	return search.Prev(search.FindAll(d.buf.String(), query), start)
}

// ============================================================================
// File Content and Metadata
// ============================================================================

// LoadFromBytes replaces the document with decoded file content and fully
// resets editing state: cursor at the start, history and composition
// cleared, encoding set to the detected one, dirty flag off. Returns the
// detected encoding. On a decode error the document is left untouched.
func (d *Document) LoadFromBytes(data []byte) (textenc.Encoding, error) {
	text, enc, err := textenc.Decode(data)
	if err != nil {
		return d.enc, err
	}

	d.buf = rope.FromString(text)
	d.sel = NewCursorSelection(0)
	d.hist.Clear()
	d.pre = nil
	d.enc = enc
	d.dirty = false
	return enc, nil
}

// Encode renders the document content in its configured encoding,
// including the encoding's byte order mark.
func (d *Document) Encode() ([]byte, error) {
	return textenc.Encode(d.buf.String(), d.enc)
}

// MarkSaved records a completed save: the document adopts the saved path
// and encoding and the dirty flag clears.
func (d *Document) MarkSaved(path string, enc textenc.Encoding) {
	d.path = path
	d.enc = enc
	d.dirty = false
}

// Dirty returns true if the document has unsaved changes.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Path returns the associated file path, or "" for an unsaved document.
func (d *Document) Path() string {
	return d.path
}

// SetPath associates the document with a file path.
func (d *Document) SetPath(path string) {
	d.path = path
}

// Encoding returns the encoding used for the next save.
func (d *Document) Encoding() textenc.Encoding {
	return d.enc
}

// SetEncoding changes the encoding used for the next save. The buffer is
// not re-decoded.
func (d *Document) SetEncoding(enc textenc.Encoding) {
	d.enc = enc
}

// CycleEncoding advances to the next encoding in the fixed cycle and
// returns it.
func (d *Document) CycleEncoding() textenc.Encoding {
	d.enc = d.enc.Next()
	return d.enc
}
