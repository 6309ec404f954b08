package engine

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// Domain errors returned by document and session operations.
var (
	// ErrEmptySelection indicates a clipboard operation with nothing selected.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrNoPath indicates a save was requested before a file path was set.
	ErrNoPath = errors.New("no file path")
)

// ErrKind classifies a system error for retry decisions.
type ErrKind uint8

const (
	// KindIO is an unclassified I/O failure.
	KindIO ErrKind = iota

	// KindNotFound indicates a missing file or directory.
	KindNotFound

	// KindPermission indicates an access denial.
	KindPermission

	// KindBusy indicates a transient condition such as EAGAIN or EBUSY.
	KindBusy

	// KindTimeout indicates the operation timed out.
	KindTimeout
)

// String returns a short kind name for log output.
func (k ErrKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindBusy:
		return "busy"
	case KindTimeout:
		return "timeout"
	default:
		return "io"
	}
}

// SystemError wraps a failure from the host system, classified so callers
// can decide whether a retry is worthwhile. Only the persistence boundary
// produces these; in-memory document operations never fail.
type SystemError struct {
	// Op names the failed operation, such as "open" or "save".
	Op string

	// Kind is the failure classification.
	Kind ErrKind

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *SystemError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *SystemError) Unwrap() error {
	return e.Err
}

// Retriable reports whether the failure is transient and the same
// operation may succeed if repeated.
func (e *SystemError) Retriable() bool {
	return e.Kind == KindBusy || e.Kind == KindTimeout
}

// FromIO classifies an error from a file operation into a SystemError.
// Returns nil when err is nil.
func FromIO(op string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermission
	case errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EBUSY), errors.Is(err, syscall.EINTR):
		kind = KindBusy
	case os.IsTimeout(err):
		kind = KindTimeout
	}

	return &SystemError{Op: op, Kind: kind, Err: err}
}
