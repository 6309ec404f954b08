package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mshioda/fude/internal/engine"
)

func runMacro(t *testing.T, d *engine.Document, code string) {
	t.Helper()
	h := NewHost(d)
	defer h.Close()
	if err := h.Run(code); err != nil {
		t.Fatalf("Run error = %v", err)
	}
}

func TestMacroInsert(t *testing.T) {
	d := engine.New()
	runMacro(t, d, `doc.insert("hello")`)

	if got := d.Text(); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
	if got := d.Cursor(); got != 5 {
		t.Errorf("Cursor() = %d, want 5", got)
	}
}

func TestMacroReadsDocument(t *testing.T) {
	d := engine.New(engine.WithContent("ab"))
	runMacro(t, d, `
		local t = doc.text()
		doc.set_cursor(doc.len())
		doc.insert("/" .. t)
	`)

	if got := d.Text(); got != "ab/ab" {
		t.Errorf("Text() = %q, want %q", got, "ab/ab")
	}
}

func TestMacroLineCount(t *testing.T) {
	d := engine.New(engine.WithContent("a\nb\nc"))
	runMacro(t, d, `
		if doc.line_count() == 3 then
			doc.insert("!")
		end
	`)

	if got := d.Text(); got != "!a\nb\nc" {
		t.Errorf("Text() = %q, want %q", got, "!a\nb\nc")
	}
}

func TestMacroSelectAllDelete(t *testing.T) {
	d := engine.New(engine.WithContent("hello world"))
	runMacro(t, d, `
		doc.select_all()
		doc.delete_selection()
	`)
	if got := d.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}

	runMacro(t, d, `doc.undo()`)
	if got := d.Text(); got != "hello world" {
		t.Errorf("Text() after undo = %q, want %q", got, "hello world")
	}

	runMacro(t, d, `doc.redo()`)
	if got := d.Text(); got != "" {
		t.Errorf("Text() after redo = %q, want empty", got)
	}
}

func TestMacroBackspace(t *testing.T) {
	d := engine.New(engine.WithContent("abc"))
	runMacro(t, d, `
		doc.set_cursor(3)
		doc.backspace()
	`)

	if got := d.Text(); got != "ab" {
		t.Errorf("Text() = %q, want %q", got, "ab")
	}
}

func TestMacroExtendSelection(t *testing.T) {
	d := engine.New(engine.WithContent("abcdef"))
	runMacro(t, d, `
		doc.set_cursor(1)
		doc.set_cursor(4, true)
		doc.delete_selection()
	`)

	if got := d.Text(); got != "aef" {
		t.Errorf("Text() = %q, want %q", got, "aef")
	}
}

func TestMacroFindNext(t *testing.T) {
	d := engine.New(engine.WithContent("one two one"))
	runMacro(t, d, `
		local pos = doc.find_next("one", 1)
		if pos then
			doc.set_cursor(pos)
		end
	`)
	if got := d.Cursor(); got != 8 {
		t.Errorf("Cursor() = %d, want 8", got)
	}

	// No match leaves the cursor alone.
	runMacro(t, d, `
		local pos = doc.find_next("zzz")
		if pos then
			doc.set_cursor(pos)
		end
	`)
	if got := d.Cursor(); got != 8 {
		t.Errorf("Cursor() = %d, want unchanged 8", got)
	}
}

func TestMacroSandbox(t *testing.T) {
	d := engine.New()
	runMacro(t, d, `
		if os == nil and io == nil then
			doc.insert("sandboxed")
		end
	`)

	if got := d.Text(); got != "sandboxed" {
		t.Errorf("Text() = %q, want %q", got, "sandboxed")
	}
}

func TestRunSyntaxError(t *testing.T) {
	h := NewHost(engine.New())
	defer h.Close()

	if err := h.Run(`doc.insert(`); err == nil {
		t.Error("Run on malformed program = nil, want error")
	}
}

func TestRunBadArgument(t *testing.T) {
	h := NewHost(engine.New())
	defer h.Close()

	if err := h.Run(`doc.set_cursor("nowhere")`); err == nil {
		t.Error("Run with wrong argument type = nil, want error")
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.lua")
	if err := os.WriteFile(path, []byte(`doc.insert("from file")`), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	d := engine.New()
	h := NewHost(d)
	defer h.Close()

	if err := h.RunFile(path); err != nil {
		t.Fatalf("RunFile error = %v", err)
	}
	if got := d.Text(); got != "from file" {
		t.Errorf("Text() = %q, want %q", got, "from file")
	}
}
