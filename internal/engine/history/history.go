package history

// DefaultMaxEntries is the undo depth used when no limit is configured.
const DefaultMaxEntries = 100

// Kind discriminates edit records for replay.
type Kind uint8

const (
	// Insert added text at Offset.
	Insert Kind = iota

	// Delete removed text starting at Offset.
	Delete

	// Replace swapped the text at Offset for new text in one step.
	Replace
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Edit is one undoable mutation, recorded in literal text form.
// Offset is a character offset; Deleted and Inserted hold the exact text
// removed and added, so replaying in either direction is a single dispatch
// on Kind with no diffing.
type Edit struct {
	Kind Kind

	// Offset is where the affected range starts.
	Offset int

	// Deleted is the text removed (Delete and Replace).
	Deleted string

	// Inserted is the text added (Insert and Replace).
	Inserted string

	// CursorBefore and CursorAfter capture the cursor position immediately
	// before and after the edit, restored on undo and redo respectively.
	CursorBefore int
	CursorAfter  int
}

// History is a bounded two-stack undo/redo store.
// It holds records only; applying them to a buffer is the caller's job.
type History struct {
	undoStack  []Edit
	redoStack  []Edit
	maxEntries int
}

// New creates a history with the given undo depth.
// Non-positive limits fall back to DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records a new edit. Any redoable edits are discarded, and the
// oldest undo entries are trimmed beyond the configured depth.
func (h *History) Push(e Edit) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = h.redoStack[:0]

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = append(h.undoStack[:0:0], h.undoStack[excess:]...)
	}
}

// Undo pops the most recent edit for reverse replay and parks it on the
// redo stack. Returns false when there is nothing to undo.
func (h *History) Undo() (Edit, bool) {
	if len(h.undoStack) == 0 {
		return Edit{}, false
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e, true
}

// Redo pops the most recently undone edit for forward replay and returns
// it to the undo stack. The re-push does not trim, so the undo stack may
// briefly exceed the depth limit until the next Push.
func (h *History) Redo() (Edit, bool) {
	if len(h.redoStack) == 0 {
		return Edit{}, false
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e, true
}

// CanUndo reports whether an undoable edit exists.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redoable edit exists.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoDepth returns the number of undoable edits.
func (h *History) UndoDepth() int {
	return len(h.undoStack)
}

// RedoDepth returns the number of redoable edits.
func (h *History) RedoDepth() int {
	return len(h.redoStack)
}

// MaxEntries returns the configured undo depth.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
