package rope

// inlineNewlines is how many newline positions fit without a heap allocation.
// Most chunks of prose or code hold only a handful of newlines.
const inlineNewlines = 4

// newlineIndex records the character positions of newline characters within
// a single chunk. Positions fit in uint16 because chunks are bounded by
// MaxChunkSize bytes.
type newlineIndex struct {
	inline [inlineNewlines]uint16
	n      uint8
	spill  []uint16
}

// indexNewlines builds the index for a chunk's text.
func indexNewlines(s string) newlineIndex {
	var ix newlineIndex
	char := 0
	for i := 0; i < len(s); i++ {
		if isContinuation(s[i]) {
			continue
		}
		if s[i] == '\n' {
			ix.add(char)
		}
		char++
	}
	return ix
}

// add appends a newline position. Positions must be added in order.
func (ix *newlineIndex) add(pos int) {
	if ix.n < inlineNewlines {
		ix.inline[ix.n] = uint16(pos)
		ix.n++
		return
	}
	ix.spill = append(ix.spill, uint16(pos))
}

// count returns the number of recorded newlines.
func (ix *newlineIndex) count() int {
	return int(ix.n) + len(ix.spill)
}

// at returns the character position of the i-th newline (0-indexed).
func (ix *newlineIndex) at(i int) int {
	if i < int(ix.n) {
		return int(ix.inline[i])
	}
	return int(ix.spill[i-int(ix.n)])
}

// before returns how many recorded newlines have a position below the
// character offset.
func (ix *newlineIndex) before(off int) int {
	total := ix.count()
	for i := 0; i < total; i++ {
		if ix.at(i) >= off {
			return i
		}
	}
	return total
}
