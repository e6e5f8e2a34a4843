// Package history provides undo/redo for a document.
//
// Every applied edit is recorded as a Command. A command replays its edits
// against a Target, which is usually the document's buffer wrapped so that
// every view sees the edit, and restores the selections of the view that
// made the edit.
//
// # Commands
//
//   - EditCommand: one applied edit with the cursors before and after it
//   - CompoundCommand: several commands undone and redone as one unit
//
// # Grouping
//
// Commands pushed between BeginGroup and EndGroup become one CompoundCommand:
//
//	h.BeginGroup("auto-wrap")
//	// ... several edits ...
//	h.EndGroup()
//
// Transaction and GroupScope wrap the same calls for use with a closure or
// defer. Groups nest: an inner group joins the outer one, and the unit is
// recorded under the outer name when the outermost group ends.
package history
