package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and safe sharing across undo history.
//
// All offsets in the public API are character offsets (Unicode scalar
// values). Out-of-range offsets are clamped, never errors.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}

	chunks := splitIntoChunks(s)
	return buildFromChunks(chunks)
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	// Build leaf nodes
	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	// Build tree bottom-up
	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

// Len returns the total character count.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Chars()
}

// ByteLen returns the total byte count of the UTF-8 text.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
// An empty rope has one line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Newlines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.ByteLen())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the character range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// CharAt returns the character at the given offset.
// Returns utf8.RuneError and false if the offset is out of range.
func (r Rope) CharAt(offset int) (rune, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return utf8.RuneError, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, childOffset := node.findChildByChar(offset)
		node = node.children[idx]
		offset = childOffset
	}

	for _, chunk := range node.chunks {
		if offset < chunk.Chars() {
			b := charToByte(chunk.data, offset)
			ch, _ := utf8.DecodeRuneInString(chunk.data[b:])
			return ch, true
		}
		offset -= chunk.Chars()
	}

	return utf8.RuneError, false
}

// Insert inserts text at the given character offset, clamped to the rope.
// Returns a new rope; the original is unchanged.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}

	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}

	if offset <= 0 {
		return FromString(text).Concat(r)
	}

	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the character range [start, end), clamped.
// Returns a new rope; the original is unchanged.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil {
		return r
	}

	ropeLen := r.Len()
	if start < 0 {
		start = 0
	}
	if end > ropeLen {
		end = ropeLen
	}
	if start >= end {
		return r
	}

	if start == 0 && end == ropeLen {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end == ropeLen {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)

	return left.Concat(right)
}

// Replace replaces text in the character range [start, end) with new text.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end int, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}

	return r.Delete(start, end).Insert(start, text)
}

// Split splits the rope at a character offset, returning two ropes.
// Left rope contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}

	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{ASCII: true}
	}
	return r.root.summary
}

// LineStart returns the character offset of the start of the given line.
// Lines are 0-indexed; out-of-range lines clamp to the rope's bounds.
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}

	if line > r.root.summary.Newlines {
		return r.Len()
	}

	return r.root.lineStartChar(line)
}

// LineEnd returns the character offset of the end of the given line,
// not including the newline character.
func (r Rope) LineEnd(line int) int {
	if r.root == nil || line < 0 {
		return 0
	}

	if line >= r.LineCount()-1 {
		return r.Len()
	}

	return r.LineStart(line+1) - 1
}

// LineLen returns the character count of the given line, excluding the
// newline. Out-of-range lines clamp to the nearest valid line.
func (r Rope) LineLen(line int) int {
	if line < 0 {
		line = 0
	}
	if max := r.LineCount() - 1; line > max {
		line = max
	}
	return r.LineEnd(line) - r.LineStart(line)
}

// LineText returns the text of the given line (not including the newline).
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// OffsetToPoint converts a character offset to a line/column position.
// The offset is clamped; offset == Len() maps to the end of the last line.
func (r Rope) OffsetToPoint(offset int) Point {
	if r.root == nil || offset <= 0 {
		return Point{}
	}
	if offset > r.Len() {
		offset = r.Len()
	}

	line := r.root.newlinesBefore(offset)
	return Point{
		Line:   line,
		Column: offset - r.LineStart(line),
	}
}

// PointToOffset converts a line/column position to a character offset.
// Line and column are clamped to the rope.
func (r Rope) PointToOffset(point Point) int {
	if r.root == nil {
		return 0
	}

	line := point.Line
	if line < 0 {
		line = 0
	}
	if max := r.LineCount() - 1; line > max {
		line = max
	}

	start := r.LineStart(line)
	length := r.LineEnd(line) - start

	col := point.Column
	if col < 0 {
		col = 0
	}
	if col > length {
		col = length
	}
	return start + col
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
// Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes contain the same text.
// Chunk boundaries need not line up.
func (r Rope) Equals(other Rope) bool {
	if r.ByteLen() != other.ByteLen() || r.Len() != other.Len() {
		return false
	}

	a := r.Chunks()
	b := other.Chunks()
	var as, bs string

	for {
		if len(as) == 0 {
			if !a.Next() {
				return len(bs) == 0 && !b.Next()
			}
			as = a.Chunk().String()
		}
		if len(bs) == 0 {
			if !b.Next() {
				return false
			}
			bs = b.Chunk().String()
		}

		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}
		if as[:n] != bs[:n] {
			return false
		}
		as = as[n:]
		bs = bs[n:]
	}
}
