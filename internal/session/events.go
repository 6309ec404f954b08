package session

import (
	"github.com/mshioda/fude/internal/textenc"
)

// Event is a completion or notification a worker posts to the session's
// event channel. The owning goroutine hands each received event to Apply.
type Event interface {
	event()
}

// OpenResult answers an Open request: the raw bytes read from Path, or
// the read failure.
type OpenResult struct {
	Seq  uint64
	Path string
	Data []byte
	Err  error
}

func (OpenResult) event() {}

// SaveResult answers a Save request. Path and Enc echo what was written
// so a save-as can be adopted on apply.
type SaveResult struct {
	Seq  uint64
	Path string
	Enc  textenc.Encoding
	Err  error
}

func (SaveResult) event() {}

// SearchResult answers a StartSearch request with the match offsets for
// Query over the text snapshot the search ran on.
type SearchResult struct {
	Seq     uint64
	Query   string
	Matches []int
}

func (SearchResult) event() {}

// DiskChange is an unsolicited notification that the watched file
// changed outside the session.
type DiskChange struct {
	Path string
	Op   DiskOp
}

func (DiskChange) event() {}

// DiskOp is the kind of change the watcher observed.
type DiskOp int

const (
	// OpWrite indicates the file content changed.
	OpWrite DiskOp = iota

	// OpCreate indicates the file appeared.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the operation name.
func (op DiskOp) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}
