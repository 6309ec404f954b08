package rope

import "strings"

// Tree structure constants
const (
	// MinChildren is the minimum children per internal node (except root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8   // 0 for leaves, >0 for internal
	summary Summary // Aggregated metrics for entire subtree

	// Internal node fields (height > 0)
	children       []*Node   // Child nodes
	childSummaries []Summary // Per-child summaries for efficient seeking

	// Leaf node fields (height == 0)
	chunks []Chunk // Text chunks in this leaf
}

// newLeafNode creates an empty leaf node.
func newLeafNode() *Node {
	return &Node{
		height: 0,
		chunks: make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

// newLeafNodeWithChunks creates a leaf node with the given chunks.
func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

// newInternalNode creates an internal node with the given children.
func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]Summary, len(children))
	var total Summary

	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Chars returns the character count of text in this subtree.
func (n *Node) Chars() int {
	return n.summary.Chars
}

// recomputeSummary recalculates the summary from children or chunks.
func (n *Node) recomputeSummary() {
	if n.IsLeaf() {
		n.summary = Summary{ASCII: true}
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}

	n.summary = Summary{ASCII: true}
	n.childSummaries = make([]Summary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// clone creates a shallow copy of the node.
func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]Summary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}

	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange extracts text in the character range [start, end).
func (n *Node) textInRange(start, end int) string {
	if start >= end || start >= n.Chars() {
		return ""
	}
	if end > n.Chars() {
		end = n.Chars()
	}

	var sb strings.Builder
	sb.Grow(end - start)
	n.appendRange(&sb, start, end)
	return sb.String()
}

// appendRange appends text in the character range to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Chars()

			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			sliceStart := 0
			if start > offset {
				sliceStart = start - offset
			}
			sliceEnd := chunk.Chars()
			if end < chunkEnd {
				sliceEnd = end - offset
			}

			sb.WriteString(chunk.sliceChars(sliceStart, sliceEnd))
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childChars := n.childSummaries[i].Chars
		childEnd := offset + childChars

		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		childStart := 0
		if start > offset {
			childStart = start - offset
		}
		childEndAdj := childChars
		if end < childEnd {
			childEndAdj = end - offset
		}

		child.appendRange(sb, childStart, childEndAdj)
		offset = childEnd
	}
}

// newlinesBefore counts newline characters in the range [0, off) of this
// subtree, off in characters.
func (n *Node) newlinesBefore(off int) int {
	if off <= 0 {
		return 0
	}
	if off >= n.Chars() {
		return n.summary.Newlines
	}

	if n.IsLeaf() {
		count := 0
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Chars()
			if chunkEnd <= off {
				count += chunk.Summary().Newlines
				offset = chunkEnd
				continue
			}
			count += chunk.newlines.before(off - offset)
			break
		}
		return count
	}

	count := 0
	offset := 0
	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Chars
		if childEnd <= off {
			count += n.childSummaries[i].Newlines
			offset = childEnd
			continue
		}
		return count + child.newlinesBefore(off-offset)
	}
	return count
}

// lineStartChar returns the character offset just past the line-th newline
// in this subtree. line must be in [1, newline count].
func (n *Node) lineStartChar(line int) int {
	if n.IsLeaf() {
		newlines := 0
		offset := 0
		for _, chunk := range n.chunks {
			chunkNewlines := chunk.Summary().Newlines
			if newlines+chunkNewlines >= line {
				return offset + chunk.newlines.at(line-newlines-1) + 1
			}
			newlines += chunkNewlines
			offset += chunk.Chars()
		}
		return n.Chars()
	}

	newlines := 0
	offset := 0
	for i, child := range n.children {
		childNewlines := n.childSummaries[i].Newlines
		if newlines+childNewlines >= line {
			return offset + child.lineStartChar(line-newlines)
		}
		newlines += childNewlines
		offset += n.childSummaries[i].Chars
	}
	return n.Chars()
}

// split splits the node at the given character offset.
// Returns two nodes: left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Chars() {
		return n.clone(), newLeafNode()
	}

	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

// splitLeaf splits a leaf node at the given character offset.
func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	currentOffset := 0

	for _, chunk := range n.chunks {
		chunkChars := chunk.Chars()

		if currentOffset+chunkChars <= offset {
			// Entire chunk goes to left
			leftChunks = append(leftChunks, chunk)
		} else if currentOffset >= offset {
			// Entire chunk goes to right
			rightChunks = append(rightChunks, chunk)
		} else {
			// Need to split this chunk
			left, right := chunk.SplitChars(offset - currentOffset)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		currentOffset += chunkChars
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

// splitInternal splits an internal node at the given character offset.
func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	currentOffset := 0

	for i, child := range n.children {
		childChars := n.childSummaries[i].Chars

		if currentOffset+childChars <= offset {
			leftChildren = append(leftChildren, child)
		} else if currentOffset >= offset {
			rightChildren = append(rightChildren, child)
		} else {
			leftChild, rightChild := child.split(offset - currentOffset)
			if leftChild.Chars() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.Chars() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		currentOffset += childChars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	// Need to split into multiple levels
	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}

	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Chars() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Chars() == 0 {
		return left
	}

	// If both are leaves, try to merge
	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Bring to same height by wrapping the shorter one
	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	return mergeNodes(left, right)
}

// concatLeaves concatenates two leaf nodes.
func concatLeaves(left, right *Node) *Node {
	totalChunks := len(left.chunks) + len(right.chunks)

	if totalChunks <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, totalChunks)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}

	return newInternalNode([]*Node{left.clone(), right.clone()})
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	allChildren := make([]*Node, 0, len(left.children)+len(right.children))
	allChildren = append(allChildren, left.children...)
	allChildren = append(allChildren, right.children...)

	if len(allChildren) <= MaxChildren {
		return newInternalNode(allChildren)
	}

	return buildNodeFromChildren(allChildren)
}

// findChildByChar finds the child containing the given character offset.
// Returns the child index and the offset within that child.
func (n *Node) findChildByChar(offset int) (int, int) {
	if n.IsLeaf() {
		return -1, 0
	}

	currentOffset := 0
	for i, summary := range n.childSummaries {
		if currentOffset+summary.Chars > offset {
			return i, offset - currentOffset
		}
		currentOffset += summary.Chars
	}

	// Offset is at or past the end
	lastIdx := len(n.children) - 1
	return lastIdx, offset - (n.summary.Chars - n.childSummaries[lastIdx].Chars)
}
