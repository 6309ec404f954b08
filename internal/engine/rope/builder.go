package rope

import (
	"io"
	"strings"
)

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the rope structure when Build() is called.
type Builder struct {
	chunks   []Chunk
	buffer   strings.Builder
	totalLen int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{
		chunks: make([]Chunk, 0, 64),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}

	b.totalLen += len(s)
	b.buffer.WriteString(s)

	// Flush to chunks if the buffer is large enough
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flushBuffer()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.WriteString(string(p))
	return len(p), nil
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.buffer.WriteRune(r)
	b.totalLen += n
	return n, err
}

// flushBuffer converts the buffer contents to chunks. Byte-stream writes
// can end mid-rune, so an incomplete trailing sequence stays buffered to
// keep every chunk boundary on a rune boundary.
func (b *Builder) flushBuffer() {
	if b.buffer.Len() == 0 {
		return
	}

	s := b.buffer.String()
	b.buffer.Reset()

	cut := len(s) - incompleteTailLen(s)
	if cut == 0 {
		b.buffer.WriteString(s)
		return
	}

	b.chunks = append(b.chunks, splitIntoChunks(s[:cut])...)
	if cut < len(s) {
		b.buffer.WriteString(s[cut:])
	}
}

// incompleteTailLen returns the length of an incomplete UTF-8 sequence at
// the end of s, or 0 when s ends on a rune boundary.
func incompleteTailLen(s string) int {
	n := len(s)
	for back := 1; back <= 3 && back <= n; back++ {
		lead := s[n-back]
		if isContinuation(lead) {
			continue
		}

		var size int
		switch {
		case lead < 0x80:
			size = 1
		case lead&0xE0 == 0xC0:
			size = 2
		case lead&0xF0 == 0xE0:
			size = 3
		case lead&0xF8 == 0xF0:
			size = 4
		default:
			size = 1 // invalid lead byte, nothing further is coming for it
		}

		if size > back {
			return back
		}
		return 0
	}
	return 0
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer.Reset()
	b.totalLen = 0
}

// Build creates the rope from accumulated data.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	// Final flush takes everything, incomplete tail included.
	if b.buffer.Len() > 0 {
		s := b.buffer.String()
		b.buffer.Reset()
		b.chunks = append(b.chunks, splitIntoChunks(s)...)
	}

	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}

	chunks := b.chunks
	b.Reset()

	return buildFromChunks(chunks)
}

// ReadFrom implements io.ReaderFrom for efficient reading.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
