package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data     string
	summary  Summary
	newlines newlineIndex
}

// NewChunk creates a chunk from a string.
// Metrics and the newline index are computed eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:     s,
		summary:  Summarize(s),
		newlines: indexNewlines(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() Summary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Chars returns the character count of the chunk.
func (c Chunk) Chars() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// SplitChars splits a chunk at a character offset, returning two chunks.
func (c Chunk) SplitChars(chars int) (Chunk, Chunk) {
	if chars <= 0 {
		return Chunk{}, c
	}
	if chars >= c.summary.Chars {
		return c, Chunk{}
	}

	b := charToByte(c.data, chars)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// sliceChars returns the text between two character offsets within the chunk.
// Both offsets are clamped to the chunk.
func (c Chunk) sliceChars(start, end int) string {
	if start >= end {
		return ""
	}
	bs := charToByte(c.data, start)
	be := charToByte(c.data, end)
	return c.data[bs:be]
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s

	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			// Last chunk, take it all
			chunks = append(chunks, NewChunk(remaining))
			break
		}

		splitPoint := findSplitBoundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:splitPoint]))
		remaining = remaining[splitPoint:]
	}

	return chunks
}

// findSplitBoundary finds a valid UTF-8 boundary near the target position.
// It prefers splitting after a newline if one exists nearby.
func findSplitBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := target - MinChunkSize/4
	if searchStart < 0 {
		searchStart = 0
	}
	searchEnd := target + MinChunkSize/4
	if searchEnd > len(s) {
		searchEnd = len(s)
	}

	// Prefer splitting after a newline
	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// No newline found, just ensure a UTF-8 boundary. Move forward until
	// we're at a valid one, falling back to scanning backward.
	pos := target
	for pos < len(s) && isContinuation(s[pos]) {
		pos++
	}
	if pos > target+4 || pos >= len(s) {
		pos = target
		for pos > 0 && isContinuation(s[pos]) {
			pos--
		}
	}

	return pos
}
