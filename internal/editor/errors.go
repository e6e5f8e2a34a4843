package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrNoDocument indicates the view is not open in this editor.
	ErrNoDocument = errors.New("no document for view")

	// ErrNoPath indicates a save was attempted on a document without a file.
	ErrNoPath = errors.New("document has no file path")

	// ErrLossyDecode indicates a save over a file whose bytes were not valid
	// UTF-8 when it was opened.
	ErrLossyDecode = errors.New("file was not valid UTF-8; saving would replace its invalid bytes")
)
