// Package script runs editor macros.
//
// Macros are Lua programs driving a document through a `doc` module.
// Execution is synchronous on the calling goroutine, which keeps the
// document's single-owner contract. The interpreter opens only the
// base, table, string, and math libraries, so macros cannot reach the
// file system or spawn processes. Offsets crossing the boundary are
// 0-based character counts, exactly as the engine reports them.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mshioda/fude/internal/engine"
)

// Host runs Lua macros against one document.
type Host struct {
	doc *engine.Document
	L   *lua.LState
}

// NewHost creates a macro host around doc.
func NewHost(doc *engine.Document) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	h := &Host{doc: doc, L: L}
	h.register()
	return h
}

// Close releases the interpreter.
func (h *Host) Close() {
	h.L.Close()
}

// Run executes a macro program.
func (h *Host) Run(code string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("macro panic: %v", r)
		}
	}()
	return h.L.DoString(code)
}

// RunFile executes a macro file.
func (h *Host) RunFile(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("macro panic: %v", r)
		}
	}()
	return h.L.DoFile(path)
}

func (h *Host) register() {
	mod := h.L.NewTable()

	h.L.SetField(mod, "text", h.L.NewFunction(h.text))
	h.L.SetField(mod, "len", h.L.NewFunction(h.length))
	h.L.SetField(mod, "line_count", h.L.NewFunction(h.lineCount))
	h.L.SetField(mod, "cursor", h.L.NewFunction(h.cursor))
	h.L.SetField(mod, "set_cursor", h.L.NewFunction(h.setCursor))
	h.L.SetField(mod, "select_all", h.L.NewFunction(h.selectAll))
	h.L.SetField(mod, "insert", h.L.NewFunction(h.insert))
	h.L.SetField(mod, "backspace", h.L.NewFunction(h.backspace))
	h.L.SetField(mod, "delete_selection", h.L.NewFunction(h.deleteSelection))
	h.L.SetField(mod, "undo", h.L.NewFunction(h.undo))
	h.L.SetField(mod, "redo", h.L.NewFunction(h.redo))
	h.L.SetField(mod, "find_next", h.L.NewFunction(h.findNext))

	h.L.SetGlobal("doc", mod)
}

// text() -> string
// Returns the full document text.
func (h *Host) text(L *lua.LState) int {
	L.Push(lua.LString(h.doc.Text()))
	return 1
}

// len() -> number
// Returns the document length in characters.
func (h *Host) length(L *lua.LState) int {
	L.Push(lua.LNumber(h.doc.Len()))
	return 1
}

// line_count() -> number
// Returns the number of lines.
func (h *Host) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(h.doc.LineCount()))
	return 1
}

// cursor() -> number
// Returns the cursor's character offset.
func (h *Host) cursor(L *lua.LState) int {
	L.Push(lua.LNumber(h.doc.Cursor()))
	return 1
}

// set_cursor(offset [, extend])
// Moves the cursor, clamped to the document. With extend, the
// selection anchor stays put.
func (h *Host) setCursor(L *lua.LState) int {
	offset := L.CheckInt(1)
	extend := L.OptBool(2, false)
	h.doc.SetCursor(offset, extend)
	return 0
}

// select_all() -> bool
// Selects the whole document. Returns whether the selection changed.
func (h *Host) selectAll(L *lua.LState) int {
	L.Push(lua.LBool(h.doc.SelectAll()))
	return 1
}

// insert(text)
// Inserts text at the cursor, replacing any selection.
func (h *Host) insert(L *lua.LState) int {
	h.doc.InsertText(L.CheckString(1))
	return 0
}

// backspace()
// Deletes the selection, or the character before the cursor.
func (h *Host) backspace(L *lua.LState) int {
	h.doc.Backspace()
	return 0
}

// delete_selection() -> bool
// Deletes the selected text. Returns false without a selection.
func (h *Host) deleteSelection(L *lua.LState) int {
	L.Push(lua.LBool(h.doc.DeleteSelection()))
	return 1
}

// undo() -> bool
// Undoes the last edit. Returns false with nothing to undo.
func (h *Host) undo(L *lua.LState) int {
	L.Push(lua.LBool(h.doc.Undo()))
	return 1
}

// redo() -> bool
// Re-applies the last undone edit.
func (h *Host) redo(L *lua.LState) int {
	L.Push(lua.LBool(h.doc.Redo()))
	return 1
}

// find_next(query [, start]) -> number | nil
// Returns the offset of the next match at or after start, wrapping
// around the document end. Start defaults to the cursor.
func (h *Host) findNext(L *lua.LState) int {
	query := L.CheckString(1)
	start := L.OptInt(2, h.doc.Cursor())

	pos, ok := h.doc.FindNext(query, start)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(pos))
	return 1
}
