// Package editor ties documents, views, configuration and hooks together.
//
// An Editor owns every open document and the views onto them. Text typed
// into a view goes through InsertChar, which inserts the character at every
// cursor of the view as one undo step and then fires the PostInsertChar
// hooks. Features such as automatic line wrapping attach themselves to that
// hook rather than to the insert path:
//
//	ed := editor.New(editor.WithConfig(cfg.Editor()))
//	reflow.RegisterHooks(ed)
//
//	view, _ := ed.Open("notes.txt")
//	ed.InsertChar(view, 'x')
//
// Configuration can be swapped at any time with SetConfig; hooks read the
// current settings on every event.
package editor
