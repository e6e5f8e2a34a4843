package editor

import (
	"fmt"

	"github.com/dshills/typewrap/internal/engine"
)

// PostInsertChar is fired after a typed character has been inserted at
// every cursor of a view.
type PostInsertChar struct {
	Editor *Editor
	View   engine.ViewID
	Doc    *engine.Document
	Char   rune
}

func (e PostInsertChar) String() string {
	return fmt.Sprintf("PostInsertChar{view=%s char=%q}", e.View, e.Char)
}
