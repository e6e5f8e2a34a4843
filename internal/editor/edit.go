package editor

import (
	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

// Undo group names.
const (
	GroupInsert  = "insert"
	GroupNewline = "newline"
	GroupDelete  = "delete"
)

// InsertChar types r into view: it replaces every selection, or inserts at
// every cursor, as one undo step. The PostInsertChar hooks run afterwards;
// their failures are logged, not returned.
func (e *Editor) InsertChar(view engine.ViewID, r rune) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}

	text := string(r)
	err = e.replaceSelections(doc, view, GroupInsert, func(cursor.Selection) string {
		return text
	})
	if err != nil {
		return err
	}

	event := PostInsertChar{Editor: e, View: view, Doc: doc, Char: r}
	if err := e.postInsert.Run(event); err != nil {
		e.logger.Error("post-insert hook failed", "view", view, "error", err)
	}
	return nil
}

// InsertText inserts s at every cursor as one undo step. No hooks run.
func (e *Editor) InsertText(view engine.ViewID, s string) error {
	if s == "" {
		return nil
	}
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	return e.replaceSelections(doc, view, GroupInsert, func(cursor.Selection) string {
		return s
	})
}

// InsertNewline breaks the line at every cursor and indents the new line
// with the current indentation calculator.
func (e *Editor) InsertNewline(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	return e.replaceSelections(doc, view, GroupNewline, func(sel cursor.Selection) string {
		return "\n" + e.IndentFor(doc, sel.Start())
	})
}

// replaceSelections replaces each selection of view with the text returned
// by textFor, last selection first so earlier offsets stay valid. The
// document remaps the cursors after every edit.
func (e *Editor) replaceSelections(doc *engine.Document, view engine.ViewID, group string, textFor func(cursor.Selection) string) error {
	sels, err := doc.Selections(view)
	if err != nil {
		return err
	}
	if err := collapseToEnds(doc, view, sels); err != nil {
		return err
	}

	return doc.Transaction(group, func() error {
		for i := len(sels) - 1; i >= 0; i-- {
			edit := buffer.NewEdit(sels[i].Range(), textFor(sels[i]))
			if _, err := doc.ApplyEdit(view, edit); err != nil {
				return err
			}
		}
		return nil
	})
}

// collapseToEnds turns each selection into a cursor at its end, so that
// replacing the selection leaves the cursor after the new text.
func collapseToEnds(doc *engine.Document, view engine.ViewID, sels []cursor.Selection) error {
	collapsed := make([]cursor.Selection, len(sels))
	for i, sel := range sels {
		collapsed[i] = cursor.NewCursorSelection(sel.End())
	}
	return doc.SetSelections(view, collapsed)
}

// DeleteBackward deletes each selection, or the character before each
// cursor, as one undo step. A line break counts as one character.
func (e *Editor) DeleteBackward(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	sels, err := doc.Selections(view)
	if err != nil {
		return err
	}
	if err := collapseToEnds(doc, view, sels); err != nil {
		return err
	}

	return doc.Transaction(GroupDelete, func() error {
		for i := len(sels) - 1; i >= 0; i-- {
			r := sels[i].Range()
			if r.IsEmpty() {
				if r.Start == 0 {
					continue
				}
				r.Start = previousBoundary(doc, r.Start)
			}
			if _, err := doc.ApplyEdit(view, buffer.NewDelete(r.Start, r.End)); err != nil {
				return err
			}
		}
		return nil
	})
}

// previousBoundary returns the offset one character before offset, treating
// "\r\n" as a single character.
func previousBoundary(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	if offset >= 2 && doc.Slice(offset-2, offset) == "\r\n" {
		return offset - 2
	}
	return offset - 1
}

// Undo undoes the last change of view's document.
func (e *Editor) Undo(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	return doc.Undo(view)
}

// Redo redoes the last undone change of view's document.
func (e *Editor) Redo(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	return doc.Redo(view)
}
