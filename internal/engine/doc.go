// Package engine provides the document engine for Fude.
//
// The engine package serves as the main facade, combining the rope buffer,
// cursor and selection handling, undo/redo, the IME composition overlay,
// and file encoding metadata into a single synchronous API for building
// the editor around.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope with character-offset addressing (O(log n) operations)
//   - history: bounded two-stack undo/redo over literal edit records
//   - search: pure literal search with wraparound navigation
//
// File bytes are converted at the boundary by the textenc package; inside
// the engine all text is UTF-8 and all positions are character offsets.
//
// # Ownership
//
// A Document is owned by a single goroutine and performs no internal
// locking. Concurrent access is coordinated by the caller; the session
// layer owns each document and serializes operations on it.
//
// # Clamping
//
// Position arguments are clamped to the buffer rather than rejected, and
// operations that have nothing to do (backspace at the start, undo with an
// empty stack) are no-ops. In-memory operations therefore never return
// errors; failures only arise at the encoding and persistence boundaries.
//
// # Basic Usage
//
// Create a document and edit at the cursor:
//
//	d := engine.New()
//
//	d.InsertText("Hello, World!")
//	text := d.Text() // "Hello, World!"
//
//	// Select "World" and replace it in one undoable step.
//	d.Select(7, 12)
//	d.InsertText("Go")
//	d.Text() // "Hello, Go!"
//
//	d.Undo() // "Hello, World!", cursor restored
//
// # Cursor and Selection
//
// The selection is a pair of character offsets: the anchor, where it
// started, and the head, where the cursor is. Motions take an extend flag;
// without it the selection collapses:
//
//	d := engine.New(engine.WithContent("ab\ncd"))
//
//	d.MoveRight(false)    // cursor at 1
//	d.MoveRight(true)     // selection 1..2
//	d.MoveDown(false)     // collapsed, cursor on line 1
//
// Vertical motion clamps the column to each line it lands on; the clamped
// column is where the next move starts from.
//
// # Composition Overlay
//
// IME composition text is an overlay, shown at the cursor but not part of
// the document until committed:
//
//	d.SetPreedit("か", nil)
//	d.SetPreedit("かん", &engine.Span{Start: 0, End: 6})
//	d.CommitPreedit("感")  // inserts "感" as one undoable edit
//
// DisplayText splices the overlay into the buffer text for rendering, and
// IMECursorChar anchors the candidate window. The overlay is never
// committed implicitly; loading, undo, and redo drop it.
//
// # Files and Encodings
//
//	data, _ := os.ReadFile("memo.txt")
//	d := engine.New(engine.WithPath("memo.txt"))
//	enc, err := d.LoadFromBytes(data)
//	if err != nil {
//		// textenc.ErrMalformed: not text in any supported encoding
//	}
//
//	_ = enc              // detected encoding, e.g. textenc.ShiftJIS
//	out, _ := d.Encode() // bytes in that encoding, with its BOM if it has one
//
// # Error Handling
//
// The package defines the error surface for the layers above:
//
//   - ErrEmptySelection: clipboard operation with nothing selected
//   - ErrNoPath: save requested before a path was set
//   - SystemError: classified host failure with a Retriable flag,
//     produced by FromIO at the persistence boundary
package engine
