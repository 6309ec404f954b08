// Package cliphist keeps a bounded, most-recent-first history of copied
// text with a small navigable picker.
//
// The picker shows a three-row window into the history. Selection moves
// one entry at a time and the window scrolls to keep the selection in
// view. History mutation and picker state are separate: pushing new text
// resets the selection but does not open or close the picker.
package cliphist

const (
	// DefaultMaxItems bounds the history when New is given no cap.
	DefaultMaxItems = 100

	// windowSize is the number of picker rows shown at once.
	windowSize = 3
)

// History is a bounded list of copied strings, newest first, plus the
// picker state: visibility, the selected entry, and the first entry of
// the visible window.
type History struct {
	items       []string
	max         int
	selected    int
	visible     bool
	windowStart int
}

// New creates an empty history holding at most max entries. A max of zero
// or less selects DefaultMaxItems.
func New(max int) *History {
	if max <= 0 {
		max = DefaultMaxItems
	}
	return &History{max: max}
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.items)
}

// Push records copied text at the front of the history, dropping the
// oldest entry past the cap and resetting the picker selection. Empty
// text and text equal to the newest entry are ignored. Returns whether
// the history changed.
func (h *History) Push(text string) bool {
	if text == "" {
		return false
	}
	if len(h.items) > 0 && h.items[0] == text {
		return false
	}

	h.items = append(h.items, "")
	copy(h.items[1:], h.items)
	h.items[0] = text
	if len(h.items) > h.max {
		h.items = h.items[:h.max]
	}

	h.selected = 0
	h.windowStart = 0
	return true
}

// Visible reports whether the picker is open.
func (h *History) Visible() bool {
	return h.visible
}

// Show opens the picker on the newest entry. With an empty history the
// picker stays closed and Show returns false.
func (h *History) Show() bool {
	if len(h.items) == 0 {
		h.visible = false
		return false
	}
	h.visible = true
	h.selected = 0
	h.windowStart = 0
	return true
}

// Hide closes the picker. Returns whether it was open.
func (h *History) Hide() bool {
	changed := h.visible
	h.visible = false
	return changed
}

// MoveUp moves the selection one entry toward the newest, scrolling the
// window when the selection leaves it.
func (h *History) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
	h.adjustWindow()
}

// MoveDown moves the selection one entry toward the oldest, scrolling the
// window when the selection leaves it.
func (h *History) MoveDown() {
	if len(h.items) == 0 {
		return
	}
	if h.selected < len(h.items)-1 {
		h.selected++
	}
	h.adjustWindow()
}

// SelectVisible selects the picker row at the given window-relative
// index. Returns false when the index falls outside the visible window.
func (h *History) SelectVisible(index int) bool {
	offset := h.windowStart + index
	if index < 0 || index >= h.VisibleCount() || offset >= len(h.items) {
		return false
	}
	h.selected = offset
	h.adjustWindow()
	return true
}

// Selected returns the entry the picker selection is on.
func (h *History) Selected() (string, bool) {
	if h.selected >= len(h.items) {
		return "", false
	}
	return h.items[h.selected], true
}

// SelectedIndex returns the absolute index of the selected entry.
func (h *History) SelectedIndex() int {
	return h.selected
}

// VisibleCount returns how many picker rows the history fills, at most
// the window size.
func (h *History) VisibleCount() int {
	if len(h.items) < windowSize {
		return len(h.items)
	}
	return windowSize
}

// Window returns the absolute index of the first visible entry and a copy
// of the entries in the visible window, newest first.
func (h *History) Window() (start int, items []string) {
	start = h.windowStart
	if start > len(h.items) {
		start = len(h.items)
	}
	end := start + h.VisibleCount()
	if end > len(h.items) {
		end = len(h.items)
	}
	return start, append([]string(nil), h.items[start:end]...)
}

// adjustWindow scrolls the window so the selection stays inside it, then
// pulls the window back when it would run past the last entry.
func (h *History) adjustWindow() {
	size := h.VisibleCount()
	if size < 1 {
		size = 1
	}

	if h.selected < h.windowStart {
		h.windowStart = h.selected
	} else if h.selected >= h.windowStart+size {
		h.windowStart = h.selected - (size - 1)
	}

	maxStart := len(h.items) - size
	if maxStart < 0 {
		maxStart = 0
	}
	if h.windowStart > maxStart {
		h.windowStart = maxStart
	}
}
