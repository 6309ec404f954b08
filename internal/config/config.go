// Package config loads editor settings.
//
// Settings come from a TOML file overlaid with FUDE_* environment
// variables. A missing file is not an error: defaults apply, and every
// load path ends in a validated Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/mshioda/fude/internal/engine"
	"github.com/mshioda/fude/internal/textenc"
)

// Config is the editor's settings tree.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Files   FilesConfig   `toml:"files"`
	Session SessionConfig `toml:"session"`
}

// EditorConfig holds text editing settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// UndoLimit caps the undo history depth.
	UndoLimit int `toml:"undo_limit"`
}

// FilesConfig holds file handling settings.
type FilesConfig struct {
	// Encoding is the label of the encoding used for new documents.
	Encoding string `toml:"encoding"`
}

// SessionConfig holds session restore settings.
type SessionConfig struct {
	// RestoreState re-opens the last file and cursor position on start.
	RestoreState bool `toml:"restore_state"`

	// StateFile overrides where the session state is kept.
	StateFile string `toml:"state_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:  4,
			UndoLimit: engine.DefaultMaxUndoEntries,
		},
		Files: FilesConfig{
			Encoding: textenc.UTF8.String(),
		},
		Session: SessionConfig{
			RestoreState: true,
		},
	}
}

// Load reads the settings file at path, overlays FUDE_* environment
// variables, and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, parseError(path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// applyEnv overlays environment variables, the highest-priority
// source. Unparseable values are ignored.
func applyEnv(cfg *Config) {
	if v, ok := lookupInt("FUDE_TAB_WIDTH"); ok {
		cfg.Editor.TabWidth = v
	}
	if v, ok := lookupInt("FUDE_UNDO_LIMIT"); ok {
		cfg.Editor.UndoLimit = v
	}
	if v, ok := os.LookupEnv("FUDE_ENCODING"); ok {
		cfg.Files.Encoding = v
	}
	if v, ok := lookupBool("FUDE_RESTORE_STATE"); ok {
		cfg.Session.RestoreState = v
	}
	if v, ok := os.LookupEnv("FUDE_STATE_FILE"); ok {
		cfg.Session.StateFile = v
	}
}

func lookupInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupBool(name string) (bool, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Validate rejects settings no component can honor.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return &ValidationError{
			Setting: "editor.tab_width",
			Message: "must be between 1 and 16",
			Value:   c.Editor.TabWidth,
		}
	}
	if c.Editor.UndoLimit < 1 {
		return &ValidationError{
			Setting: "editor.undo_limit",
			Message: "must be at least 1",
			Value:   c.Editor.UndoLimit,
		}
	}
	if _, err := textenc.Parse(c.Files.Encoding); err != nil {
		return &ValidationError{
			Setting: "files.encoding",
			Message: "unknown encoding label",
			Value:   c.Files.Encoding,
		}
	}
	return nil
}

// Encoding returns the configured default encoding.
func (c *Config) Encoding() textenc.Encoding {
	enc, err := textenc.Parse(c.Files.Encoding)
	if err != nil {
		return textenc.UTF8
	}
	return enc
}

// EngineOptions translates the settings into document options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMaxUndoEntries(c.Editor.UndoLimit),
		engine.WithEncoding(c.Encoding()),
	}
}

// DefaultPath returns the standard location of the settings file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fude", "config.toml")
}

// StatePath returns where session state is kept, honoring the
// configured override.
func (c *Config) StatePath() string {
	if c.Session.StateFile != "" {
		return c.Session.StateFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fude", "state.json")
}
