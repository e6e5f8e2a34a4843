package history

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

// CharOffset is an alias for buffer.CharOffset for convenience.
type CharOffset = buffer.CharOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Operation is one undoable edit.
type Operation struct {
	Range   Range  // Range that was replaced, in the text before the edit
	OldText string // Text that was replaced
	NewText string // Text that was inserted

	CursorsBefore []Selection
	CursorsAfter  []Selection

	Timestamp time.Time
}

// NewOperation creates a new operation.
func NewOperation(r Range, oldText, newText string) *Operation {
	return &Operation{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewOperationFromResult records an edit the buffer has already applied.
func NewOperationFromResult(res buffer.EditResult) *Operation {
	return NewOperation(res.OldRange, res.OldText, res.NewText)
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.Range.IsEmpty() && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && op.NewText == ""
}

// Delta returns the change in document length in characters.
func (op *Operation) Delta() int {
	return utf8.RuneCountInString(op.NewText) - op.Range.Len()
}

// NewRange returns the range covered by NewText after the operation.
func (op *Operation) NewRange() Range {
	return Range{
		Start: op.Range.Start,
		End:   op.Range.Start + utf8.RuneCountInString(op.NewText),
	}
}

// Edit returns the buffer edit that performs the operation.
func (op *Operation) Edit() buffer.Edit {
	return buffer.NewEdit(op.Range, op.NewText)
}

// Invert returns an operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:         op.NewRange(),
		OldText:       op.NewText,
		NewText:       op.OldText,
		CursorsBefore: op.CursorsAfter,
		CursorsAfter:  op.CursorsBefore,
		Timestamp:     time.Now(),
	}
}

// WithCursors sets the cursor state and returns the operation for chaining.
func (op *Operation) WithCursors(before, after []Selection) *Operation {
	op.CursorsBefore = before
	op.CursorsAfter = after
	return op
}

// OperationInfo describes a history entry for display.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
