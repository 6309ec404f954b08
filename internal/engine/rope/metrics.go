package rope

import "unicode/utf8"

// Point represents a line/column position.
// Line and Column are both 0-indexed; Column counts characters, not bytes.
type Point struct {
	Line   int
	Column int
}

// Summary holds aggregated metrics for a text span.
// This is the "summary" type for the rope tree, implementing monoid operations.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the character (Unicode scalar value) count.
	Chars int

	// Newlines is the number of newline characters.
	Newlines int

	// ASCII is true when every byte is below 0x80, so character and byte
	// offsets coincide.
	ASCII bool
}

// Add combines two summaries (monoid operation).
// This is called when concatenating rope sections.
func (s Summary) Add(other Summary) Summary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	return Summary{
		Bytes:    s.Bytes + other.Bytes,
		Chars:    s.Chars + other.Chars,
		Newlines: s.Newlines + other.Newlines,
		ASCII:    s.ASCII && other.ASCII,
	}
}

// Zero returns the identity element for the summary monoid.
func (Summary) Zero() Summary {
	return Summary{ASCII: true}
}

// IsZero returns true if this is the zero/identity summary.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// Summarize calculates metrics for a string in a single pass.
func Summarize(s string) Summary {
	sum := Summary{Bytes: len(s), ASCII: true}

	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 {
			sum.ASCII = false
		}
		if !isContinuation(b) {
			sum.Chars++
		}
		if b == '\n' {
			sum.Newlines++
		}
	}

	return sum
}

// isContinuation reports whether b is a UTF-8 continuation byte (10xxxxxx).
func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// charToByte returns the byte index of character boundary n within s.
// n is clamped to [0, character count of s].
func charToByte(s string, n int) int {
	if n <= 0 {
		return 0
	}

	seen := 0
	for i := 0; i < len(s); i++ {
		if !isContinuation(s[i]) {
			if seen == n {
				return i
			}
			seen++
		}
	}
	return len(s)
}

// byteToChar returns the number of characters in s[:off].
// off must sit on a UTF-8 boundary.
func byteToChar(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:off])
}
