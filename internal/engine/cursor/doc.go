// Package cursor provides selection management for text editing.
//
// Selections use an anchor/head model: Anchor is where the selection started
// and Head is where typing occurs. When Anchor == Head the selection is a
// plain cursor. All positions are character offsets into the buffer.
//
// A CursorSet holds the selections of one view. It is never empty, keeps its
// selections sorted, and merges selections that overlap or touch.
//
// After every buffer edit the owner maps the set through the edit:
//
//	edit := buffer.NewEdit(buffer.Range{Start: 19, End: 20}, "\n")
//	cursor.TransformCursorSet(cs, edit)
//
// Positions before the edit are unchanged, positions at or after its end
// shift by the edit's length delta, and positions inside the replaced range
// move to the end of the new text.
//
// Selection is an immutable value type. CursorSet is not thread-safe and is
// protected by its owner.
package cursor
