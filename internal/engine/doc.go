// Package engine provides the document model of the editor core.
//
// A Document combines a text buffer, the selections of every view that
// shows it, and the undo history into one thread-safe facade. Reads may
// happen from any goroutine; edits are serialized by the document's lock.
//
// # Architecture
//
//   - buffer: immutable text with a line index, char offsets throughout
//   - cursor: selections and their mapping through edits
//   - history: command-based undo/redo with grouping
//
// # Views
//
// Each view attached to a document owns a CursorSet. Every applied edit,
// including those replayed by undo and redo, remaps the selections of all
// views, so a view never points at stale offsets:
//
//	doc := engine.New(engine.WithContent("hello world"))
//	view := doc.AddView()
//	doc.SetSelections(view, []cursor.Selection{cursor.NewCursorSelection(11)})
//
//	doc.ApplyEdit(view, buffer.NewEdit(buffer.NewRange(5, 6), "\n"))
//	// doc.Text() == "hello\nworld", the cursor is still at offset 11
//
// # Undo groups
//
// Edits applied inside Transaction undo as a single step:
//
//	doc.Transaction("auto-wrap", func() error {
//		// several ApplyEdit calls
//		return nil
//	})
//	doc.Undo(view)
//
// # Metadata
//
// A document also records its path, language id, indentation style, tab
// width, an optional text width override and whether it has unsaved
// changes.
package engine
