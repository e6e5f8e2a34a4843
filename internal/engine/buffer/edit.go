package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Edit replaces the text in Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset CharOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end CharOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// NewLen returns the length of the replacement in characters.
func (e Edit) NewLen() int {
	return utf8.RuneCountInString(e.NewText)
}

// Delta returns the change in buffer length caused by this edit.
// The result is computed before line ending normalization; use
// EditResult.Delta for the applied value.
func (e Edit) Delta() int {
	return e.NewLen() - e.Range.Len()
}

// EditResult describes an applied edit.
type EditResult struct {
	OldRange Range  // The range that was replaced
	NewRange Range  // The range covered by the inserted text
	OldText  string // The text that was replaced
	NewText  string // The inserted text after normalization
	Delta    int    // Change in buffer length
}

// Edit returns the applied edit, with the normalized replacement text.
func (r EditResult) Edit() Edit {
	return Edit{Range: r.OldRange, NewText: r.NewText}
}
