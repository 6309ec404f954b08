// Package session hosts a document for an interactive editing session.
//
// The engine is synchronous and single-owner, so the session farms file
// I/O and search out to worker goroutines and serializes their results
// back through one event channel. Each request gets a sequence number;
// a per-kind slot remembers the most recent request, and completions
// whose number no longer matches their slot are discarded on Apply. The
// owning goroutine drives everything: session methods are not safe for
// concurrent use, and workers touch nothing but the event channel.
//
// The session also carries the surrounding editing state a document
// alone does not: clipboard history, the latest search results, disk
// change watching, and a small state file for restoring the last
// session.
package session

import (
	"log"
	"os"
	"time"

	"github.com/mshioda/fude/internal/cliphist"
	"github.com/mshioda/fude/internal/engine"
	"github.com/mshioda/fude/internal/engine/search"
	"github.com/mshioda/fude/internal/textenc"
)

// SearchState is the latest finished search plus whether a newer one is
// still running. Query and Matches always describe the same pass.
type SearchState struct {
	Query   string
	Matches []int
	Pending bool
}

// Session owns one document and the workers around it.
type Session struct {
	doc    *engine.Document
	clips  *cliphist.History
	events chan Event
	logger *log.Logger

	seq           uint64
	openRequest   uint64
	saveRequest   uint64
	searchRequest uint64

	search SearchState

	watch    *diskWatcher
	debounce time.Duration

	// ignoreDiskWriteUntil swallows the watcher echo of the session's
	// own save, so the host is not offered a reload of its own write.
	// Time-bounded because the echo is not guaranteed to surface.
	ignoreDiskWriteUntil time.Time

	eventBuffer  int
	clipboardCap int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for stale and failed completions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBuffer sets the event channel capacity.
func WithEventBuffer(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.eventBuffer = n
		}
	}
}

// WithClipboardCap sets the clipboard history capacity.
func WithClipboardCap(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.clipboardCap = n
		}
	}
}

// WithWatchDebounce sets how long the disk watcher coalesces rapid
// changes before posting one DiskChange.
func WithWatchDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// New creates a session around a document.
func New(doc *engine.Document, opts ...Option) *Session {
	s := &Session{
		doc:          doc,
		logger:       log.Default(),
		debounce:     100 * time.Millisecond,
		eventBuffer:  16,
		clipboardCap: cliphist.DefaultMaxItems,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.clips = cliphist.New(s.clipboardCap)
	s.events = make(chan Event, s.eventBuffer)
	return s
}

// Document returns the hosted document. Callers share the session's
// goroutine; the document is not safe to use from any other.
func (s *Session) Document() *engine.Document {
	return s.doc
}

// Clipboard returns the session's clipboard history.
func (s *Session) Clipboard() *cliphist.History {
	return s.clips
}

// Events returns the channel workers post completions on. The owner
// must keep draining it while requests are in flight.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Search returns the latest search state.
func (s *Session) Search() SearchState {
	return s.search
}

// Close stops the disk watcher. In-flight workers finish on their own
// and their completions remain on the event channel.
func (s *Session) Close() {
	s.stopWatch()
}

func (s *Session) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// ============================================================================
// Requests
// ============================================================================

// Open reads path on a worker and posts an OpenResult. A newer Open
// supersedes this one; the superseded completion is dropped on Apply.
// Returns the request's sequence number.
func (s *Session) Open(path string) uint64 {
	seq := s.nextSeq()
	s.openRequest = seq

	go func() {
		data, err := os.ReadFile(path)
		s.events <- OpenResult{Seq: seq, Path: path, Data: data, Err: engine.FromIO("open", err)}
	}()
	return seq
}

// Save encodes the current text and writes it to path on a worker,
// posting a SaveResult. An empty path falls back to the document's own;
// with neither, ErrNoPath. The text and encoding are snapshotted now,
// so edits made while the write runs do not leak into the file.
func (s *Session) Save(path string) (uint64, error) {
	if path == "" {
		path = s.doc.Path()
	}
	if path == "" {
		return 0, engine.ErrNoPath
	}

	seq := s.nextSeq()
	s.saveRequest = seq
	text := s.doc.Text()
	enc := s.doc.Encoding()

	go func() {
		data, err := textenc.Encode(text, enc)
		if err == nil {
			err = engine.FromIO("save", os.WriteFile(path, data, 0o644))
		}
		s.events <- SaveResult{Seq: seq, Path: path, Enc: enc, Err: err}
	}()
	return seq, nil
}

// StartSearch snapshots the current text and finds all matches on a
// worker, posting a SearchResult. The search state reads as pending
// until the matching result is applied.
func (s *Session) StartSearch(query string) uint64 {
	seq := s.nextSeq()
	s.searchRequest = seq
	s.search.Pending = true
	text := s.doc.Text()

	go func() {
		s.events <- SearchResult{Seq: seq, Query: query, Matches: search.FindAll(text, query)}
	}()
	return seq
}

// ============================================================================
// Apply
// ============================================================================

// Apply integrates one received event. It reports whether the event was
// current: completions for superseded requests and the watcher echo of
// the session's own save are dropped with ok false. The error is the
// event's own failure, or a decode failure discovered while applying a
// successful open.
func (s *Session) Apply(ev Event) (ok bool, err error) {
	switch ev := ev.(type) {
	case OpenResult:
		return s.applyOpen(ev)
	case SaveResult:
		return s.applySave(ev)
	case SearchResult:
		return s.applySearch(ev)
	case DiskChange:
		return s.applyDiskChange(ev)
	default:
		return false, nil
	}
}

func (s *Session) applyOpen(ev OpenResult) (bool, error) {
	if ev.Seq != s.openRequest {
		s.logger.Printf("session: dropping stale open #%d (%s)", ev.Seq, ev.Path)
		return false, nil
	}
	s.openRequest = 0

	if ev.Err != nil {
		s.logger.Printf("session: open %s: %v", ev.Path, ev.Err)
		return true, ev.Err
	}

	if _, err := s.doc.LoadFromBytes(ev.Data); err != nil {
		s.logger.Printf("session: open %s: %v", ev.Path, err)
		return true, err
	}
	s.doc.SetPath(ev.Path)
	s.search = SearchState{}
	s.rearmWatch()
	return true, nil
}

func (s *Session) applySave(ev SaveResult) (bool, error) {
	if ev.Seq != s.saveRequest {
		s.logger.Printf("session: dropping stale save #%d (%s)", ev.Seq, ev.Path)
		return false, nil
	}
	s.saveRequest = 0

	if ev.Err != nil {
		s.logger.Printf("session: save %s: %v", ev.Path, ev.Err)
		return true, ev.Err
	}

	s.doc.MarkSaved(ev.Path, ev.Enc)
	if s.watch != nil {
		s.rearmWatch()
		s.ignoreDiskWriteUntil = time.Now().Add(2 * s.debounce)
	}
	return true, nil
}

func (s *Session) applySearch(ev SearchResult) (bool, error) {
	if ev.Seq != s.searchRequest {
		s.logger.Printf("session: dropping stale search #%d (%q)", ev.Seq, ev.Query)
		return false, nil
	}
	s.searchRequest = 0
	s.search = SearchState{Query: ev.Query, Matches: ev.Matches}
	return true, nil
}

func (s *Session) applyDiskChange(ev DiskChange) (bool, error) {
	if ev.Op == OpWrite && time.Now().Before(s.ignoreDiskWriteUntil) {
		return false, nil
	}
	return true, nil
}

// ============================================================================
// Clipboard
// ============================================================================

// CopySelection pushes the selected text onto the clipboard history.
// ErrEmptySelection without a selection.
func (s *Session) CopySelection() error {
	text := s.doc.SelectedText()
	if text == "" {
		return engine.ErrEmptySelection
	}
	s.clips.Push(text)
	return nil
}

// PasteSelected inserts the clipboard picker's selected entry at the
// cursor and promotes it to the front of the history. False when the
// history is empty.
func (s *Session) PasteSelected() bool {
	text, ok := s.clips.Selected()
	if !ok {
		return false
	}
	s.doc.InsertText(text)
	s.clips.Push(text)
	return true
}
