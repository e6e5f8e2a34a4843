package editor

import (
	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

// Motion computes a new cursor offset.
type Motion func(doc *engine.Document, offset engine.CharOffset) engine.CharOffset

// Move applies motion to every cursor of view, collapsing selections.
func (e *Editor) Move(view engine.ViewID, motion Motion) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	sels, err := doc.Selections(view)
	if err != nil {
		return err
	}
	for i, sel := range sels {
		sels[i] = sel.MoveTo(motion(doc, sel.Cursor()))
	}
	return doc.SetSelections(view, sels)
}

// SetCursor replaces view's selections with a single cursor at offset.
func (e *Editor) SetCursor(view engine.ViewID, offset engine.CharOffset) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	return doc.SetSelections(view, []cursor.Selection{cursor.NewCursorSelection(offset)})
}

// AddCursor adds a cursor at offset to view.
func (e *Editor) AddCursor(view engine.ViewID, offset engine.CharOffset) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	sels, err := doc.Selections(view)
	if err != nil {
		return err
	}
	return doc.SetSelections(view, append(sels, cursor.NewCursorSelection(offset)))
}

// Left moves one character back, stepping over line breaks.
func Left(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	line := doc.CharToLine(offset)
	if offset == doc.LineStart(line) {
		if line == 0 {
			return offset
		}
		return doc.LineEnd(line - 1)
	}
	return offset - 1
}

// Right moves one character forward, stepping over line breaks.
func Right(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	line := doc.CharToLine(offset)
	if offset >= doc.LineEnd(line) {
		if line+1 >= doc.LineCount() {
			return offset
		}
		return doc.LineStart(line + 1)
	}
	return offset + 1
}

// Up moves to the same column on the previous line, clamped to its length.
func Up(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	p := doc.OffsetToPoint(offset)
	if p.Line == 0 {
		return doc.LineStart(0)
	}
	return doc.PointToOffset(buffer.Point{Line: p.Line - 1, Column: p.Column})
}

// Down moves to the same column on the next line, clamped to its length.
func Down(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	p := doc.OffsetToPoint(offset)
	if p.Line+1 >= doc.LineCount() {
		return doc.LineEnd(p.Line)
	}
	return doc.PointToOffset(buffer.Point{Line: p.Line + 1, Column: p.Column})
}

// LineStart moves to the start of the line.
func LineStart(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	return doc.LineStart(doc.CharToLine(offset))
}

// LineEnd moves to the end of the line, before its terminator.
func LineEnd(doc *engine.Document, offset engine.CharOffset) engine.CharOffset {
	return doc.LineEnd(doc.CharToLine(offset))
}
