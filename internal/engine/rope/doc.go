// Package rope implements an immutable rope for text storage, indexed by
// character offset.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 string chunks.
// Every node carries aggregated metrics (bytes, characters, newlines), so
// offset seeks, line seeks, and line/column translation are all O(log n)
// in the text size. Edits return new ropes that share structure with the
// original, which makes snapshots for undo history effectively free.
//
// Character means Unicode scalar value throughout. Callers never pass byte
// offsets; out-of-range arguments are clamped rather than rejected.
package rope
