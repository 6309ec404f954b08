package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mshioda/fude/internal/engine"
)

// State is the slice of a session worth restoring across runs.
type State struct {
	Path     string
	Encoding string
	Line     int
	Column   int
	Query    string
}

// LoadState reads a state file written by SaveState. A missing file is
// not an error; it yields a zero State for a fresh session.
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, engine.FromIO("state", err)
	}

	doc := gjson.ParseBytes(data)
	return State{
		Path:     doc.Get("file.path").String(),
		Encoding: doc.Get("file.encoding").String(),
		Line:     int(doc.Get("cursor.line").Int()),
		Column:   int(doc.Get("cursor.column").Int()),
		Query:    doc.Get("search.query").String(),
	}, nil
}

// SaveState writes the session's restorable state as JSON.
func (s *Session) SaveState(path string) error {
	pt := s.doc.CursorPoint()

	js := "{}"
	var err error
	set := func(key string, value any) {
		if err != nil {
			return
		}
		js, err = sjson.Set(js, key, value)
	}

	set("file.path", s.doc.Path())
	set("file.encoding", s.doc.Encoding().String())
	set("cursor.line", pt.Line)
	set("cursor.column", pt.Column)
	set("search.query", s.search.Query)
	if err != nil {
		return engine.FromIO("state", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return engine.FromIO("state", err)
	}
	return engine.FromIO("state", os.WriteFile(path, []byte(js), 0o644))
}
