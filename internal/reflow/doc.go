// Package reflow breaks long lines while the user types.
//
// After every typed character the auto-wrap hook checks the line under each
// cursor. A line longer than the text width is broken at a word boundary:
// the whitespace run at the boundary is replaced by a line break followed by
// the indentation the indentation calculator asks for.
//
// The work is split into an observe phase and a mutate phase:
//
//   - Locate finds the break position in one line. It is a pure function.
//   - Collect runs Locate for every cursor against one immutable snapshot
//     and returns the sorted, non-overlapping set of break requests.
//   - Bridge asks the indentation calculator for the continuation indent.
//   - Apply turns the requests into edits and applies them in ascending
//     order as one undo step. Pending requests are remapped after every
//     edit and re-checked against the current text, so a request that no
//     longer points at whitespace is skipped.
//
// RegisterHooks attaches the whole pipeline to an editor's PostInsertChar
// hooks. The hook does nothing unless editor.wrap-when-typing is set and
// the resolved text width is positive.
package reflow
