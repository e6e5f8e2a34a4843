// Package term is the terminal front end of typewrap.
//
// Terminal wraps a tcell screen. UI draws the focused view of an editor
// onto it and turns key events into editor operations. Typed characters go
// through Editor.InsertChar, so every PostInsertChar hook (auto-wrap
// included) runs exactly as it does for any other caller.
package term
