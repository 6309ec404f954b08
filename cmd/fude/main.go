// Package main is the entry point for the fude document engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mshioda/fude/internal/config"
	"github.com/mshioda/fude/internal/engine"
	"github.com/mshioda/fude/internal/script"
	"github.com/mshioda/fude/internal/session"
	"github.com/mshioda/fude/internal/textenc"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc := engine.New(cfg.EngineOptions()...)
	s := session.New(doc)
	defer s.Close()

	// Without a file argument, pick up where the last run left off.
	path := opts.File
	var restored session.State
	if path == "" && cfg.Session.RestoreState {
		restored, _ = session.LoadState(cfg.StatePath())
		path = restored.Path
	}

	if path != "" {
		if err := open(s, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if restored.Path != "" {
		doc.SetCursorLineCol(restored.Line, restored.Column, false)
	}

	if opts.MacroPath != "" {
		h := script.NewHost(doc)
		err := h.RunFile(opts.MacroPath)
		h.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.Encoding != "" {
		enc, err := textenc.Parse(opts.Encoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		doc.SetEncoding(enc)
	}

	if err := write(s, opts.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Session.RestoreState && doc.Path() != "" {
		if err := s.SaveState(cfg.StatePath()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saving state: %v\n", err)
		}
	}

	return 0
}

// open runs one file read through the session and waits for it.
func open(s *session.Session, path string) error {
	s.Open(path)
	_, err := s.Apply(<-s.Events())
	return err
}

// write emits the encoded document to path, or to standard output when
// no path is given.
func write(s *session.Session, path string) error {
	if path == "" {
		data, err := s.Document().Encode()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if _, err := s.Save(path); err != nil {
		return err
	}
	_, err := s.Apply(<-s.Events())
	return err
}

type options struct {
	ConfigPath string
	Encoding   string
	MacroPath  string
	Output     string
	File       string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Encoding, "encoding", "", "Write in this encoding (UTF-8, UTF-16LE, UTF-16BE, Shift_JIS)")
	flag.StringVar(&opts.MacroPath, "macro", "", "Lua macro file to apply")
	flag.StringVar(&opts.MacroPath, "m", "", "Lua macro file to apply (shorthand)")
	flag.StringVar(&opts.Output, "o", "", "Write the result to this path instead of standard output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fude - headless text document engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fude [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fude file.txt                              Print a file's text\n")
		fmt.Fprintf(os.Stderr, "  fude -m macro.lua -o out.txt in.txt        Apply a macro\n")
		fmt.Fprintf(os.Stderr, "  fude -encoding utf-16le -o out.txt in.txt  Convert a file's encoding\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Fude %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file argument\n")
		flag.Usage()
		os.Exit(2)
	}
	opts.File = flag.Arg(0)

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}

	return opts
}
