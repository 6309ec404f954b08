package session

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mshioda/fude/internal/engine"
)

// Watch starts posting DiskChange events for the document's current
// path. An open or save that moves the document re-points the watcher.
// ErrNoPath for an untitled document.
func (s *Session) Watch() error {
	path := s.doc.Path()
	if path == "" {
		return engine.ErrNoPath
	}

	s.stopWatch()
	w, err := newDiskWatcher(path, s.debounce, s.events, s.logger)
	if err != nil {
		return err
	}
	s.watch = w
	return nil
}

// Unwatch stops disk-change notifications.
func (s *Session) Unwatch() {
	s.stopWatch()
}

// Watching reports whether a disk watcher is active.
func (s *Session) Watching() bool {
	return s.watch != nil
}

func (s *Session) stopWatch() {
	if s.watch != nil {
		s.watch.stop()
		s.watch = nil
	}
	s.ignoreDiskWriteUntil = time.Time{}
}

// rearmWatch re-points an active watcher at the document's current
// path, recovering watches lost to renames or replaced files.
func (s *Session) rearmWatch() {
	if s.watch == nil {
		return
	}
	if err := s.Watch(); err != nil {
		s.logger.Printf("session: watch %s: %v", s.doc.Path(), err)
	}
}

// diskWatcher posts debounced DiskChange events for a single file.
type diskWatcher struct {
	fsw    *fsnotify.Watcher
	path   string
	events chan<- Event
	logger *log.Logger
	done   chan struct{}
	wg     sync.WaitGroup
}

func newDiskWatcher(path string, debounce time.Duration, events chan<- Event, logger *log.Logger) (*diskWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, engine.FromIO("watch", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, engine.FromIO("watch", err)
	}

	w := &diskWatcher{
		fsw:    fsw,
		path:   path,
		events: events,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop(debounce)
	return w, nil
}

// stop tears the watcher down and waits for its loop to exit.
func (w *diskWatcher) stop() {
	close(w.done)
	w.wg.Wait()
	w.fsw.Close()
}

// loop coalesces rapid change notifications and posts one DiskChange
// per quiet period. Removal outranks content change within a period.
func (w *diskWatcher) loop(debounce time.Duration) {
	defer w.wg.Done()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending DiskOp
	havePending := false

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			op, ok := convertOp(ev.Op)
			if !ok {
				continue
			}
			if !havePending || precedence(op) > precedence(pending) {
				pending = op
			}
			havePending = true

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			if havePending {
				havePending = false
				w.post(DiskChange{Path: w.path, Op: pending})
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Printf("session: watch %s: %v", w.path, err)
		}
	}
}

// post sends without wedging a stopped watcher on a full channel.
func (w *diskWatcher) post(ev DiskChange) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

// convertOp maps an fsnotify operation onto a DiskOp. Chmod-only
// events are ignored.
func convertOp(op fsnotify.Op) (DiskOp, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	default:
		return 0, false
	}
}

// precedence orders coalesced operations: disappearance beats content
// change beats appearance.
func precedence(op DiskOp) int {
	switch op {
	case OpRemove, OpRename:
		return 2
	case OpWrite:
		return 1
	default:
		return 0
	}
}
