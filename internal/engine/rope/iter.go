package rope

import "io"

// ChunkIterator walks the rope's chunks in order without materializing
// the full text.
type ChunkIterator struct {
	stack   []*Node
	leaf    *Node
	chunkIx int
	current Chunk
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{}
	if r.root != nil && r.root.Chars() > 0 {
		it.stack = append(it.stack, r.root)
	}
	return it
}

// Next advances to the next chunk. Returns false when exhausted.
func (it *ChunkIterator) Next() bool {
	for {
		if it.leaf != nil && it.chunkIx < len(it.leaf.chunks) {
			it.current = it.leaf.chunks[it.chunkIx]
			it.chunkIx++
			if it.current.IsEmpty() {
				continue
			}
			return true
		}
		it.leaf = nil

		if len(it.stack) == 0 {
			return false
		}

		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if n.IsLeaf() {
			it.leaf = n
			it.chunkIx = 0
			continue
		}

		// Push children in reverse so the leftmost pops first.
		for i := len(n.children) - 1; i >= 0; i-- {
			it.stack = append(it.stack, n.children[i])
		}
	}
}

// Chunk returns the current chunk. Only valid after Next returns true.
func (it *ChunkIterator) Chunk() Chunk {
	return it.current
}

// Reader streams the rope's text chunk by chunk.
type Reader struct {
	it   *ChunkIterator
	rest string
}

// NewReader returns an io.Reader over the rope's text.
func NewReader(r Rope) *Reader {
	return &Reader{it: r.Chunks()}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.rest == "" {
		if !r.it.Next() {
			return 0, io.EOF
		}
		r.rest = r.it.Chunk().String()
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}
