package cursor

import "github.com/dshills/typewrap/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset maps an offset through an edit.
//
//   - edit ends at or before offset: shift by the edit's delta
//   - edit starts at or after offset: unchanged
//   - edit spans offset: move to the end of the new text
func TransformOffset(offset CharOffset, edit Edit) CharOffset {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + edit.NewLen()
}

// TransformSelection maps both ends of a selection through an edit.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformCursorSet maps every selection in cs through an edit.
func TransformCursorSet(cs *CursorSet, edit Edit) {
	for i := range cs.selections {
		cs.selections[i] = TransformSelection(cs.selections[i], edit)
	}
	cs.normalize()
}
