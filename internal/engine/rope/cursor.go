package rope

// Cursor performs metric seeks over a rope, caching the resolved position
// so that offset and point can be read back without re-walking the tree.
// A Cursor is cheap to create and holds no mutable tree state.
type Cursor struct {
	rope   Rope
	offset int
	point  Point
}

// NewCursor creates a cursor positioned at the start of the rope.
func NewCursor(r Rope) *Cursor {
	return &Cursor{rope: r}
}

// SeekOffset positions the cursor at a character offset, clamped to the
// rope. Reports whether the requested offset was in range.
func (c *Cursor) SeekOffset(offset int) bool {
	ok := offset >= 0 && offset <= c.rope.Len()
	if offset < 0 {
		offset = 0
	}
	if offset > c.rope.Len() {
		offset = c.rope.Len()
	}

	c.offset = offset
	c.point = c.rope.OffsetToPoint(offset)
	return ok
}

// SeekLine positions the cursor at the start of a line, clamped to the
// rope. Reports whether the requested line was in range.
func (c *Cursor) SeekLine(line int) bool {
	ok := line >= 0 && line < c.rope.LineCount()
	if line < 0 {
		line = 0
	}
	if max := c.rope.LineCount() - 1; line > max {
		line = max
	}

	c.offset = c.rope.LineStart(line)
	c.point = Point{Line: line}
	return ok
}

// SeekPoint positions the cursor at a line/column position, clamped.
func (c *Cursor) SeekPoint(p Point) {
	c.offset = c.rope.PointToOffset(p)
	c.point = c.rope.OffsetToPoint(c.offset)
}

// Offset returns the cursor's character offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Point returns the cursor's line/column position.
func (c *Cursor) Point() Point {
	return c.point
}

// Char returns the character under the cursor.
// Returns false at the end of the rope.
func (c *Cursor) Char() (rune, bool) {
	return c.rope.CharAt(c.offset)
}
