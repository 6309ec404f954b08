package engine

import "fmt"

// Range is a half-open span of character offsets.
type Range struct {
	Start int
	End   int
}

// IsEmpty returns true if the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Len returns the number of characters in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains returns true if the offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Selection is a cursor with an optional extent. Anchor is where the
// selection started; Head is the cursor position, where typing occurs.
// Anchor == Head is a plain cursor. Selection is an immutable value type.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a collapsed selection at the given offset.
func NewCursorSelection(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the selection extent in characters.
func (s Selection) Len() int {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Range returns the covered span with Start <= End regardless of direction.
func (s Selection) Range() Range {
	if s.Anchor <= s.Head {
		return Range{Start: s.Anchor, End: s.Head}
	}
	return Range{Start: s.Head, End: s.Anchor}
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// IsForward returns true if the head is at or past the anchor.
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// Extend returns a selection with the head moved and the anchor fixed.
func (s Selection) Extend(offset int) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// MoveTo returns a collapsed selection at the given offset.
func (s Selection) MoveTo(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// CollapseToStart collapses the selection to its lower bound.
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Anchor: start, Head: start}
}

// CollapseToEnd collapses the selection to its upper bound.
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Anchor: end, Head: end}
}

// Clamp returns a selection bounded to [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	anchor := s.Anchor
	head := s.Head

	if anchor < 0 {
		anchor = 0
	} else if anchor > maxOffset {
		anchor = maxOffset
	}

	if head < 0 {
		head = 0
	} else if head > maxOffset {
		head = maxOffset
	}

	return Selection{Anchor: anchor, Head: head}
}

// Equals returns true if both selections have the same anchor and head.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Head == other.Head
}

// String returns a compact form for log output.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	return fmt.Sprintf("Selection(%d..%d)", s.Anchor, s.Head)
}
