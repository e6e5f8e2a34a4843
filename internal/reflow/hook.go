package reflow

import (
	"github.com/dshills/typewrap/internal/editor"
	"github.com/dshills/typewrap/internal/hook"
)

// HookName is the name of the auto-wrap hook.
const HookName = "auto-wrap"

// RegisterHooks installs the auto-wrap hook on ed.
func RegisterHooks(ed *editor.Editor) {
	ed.PostInsertCharHooks().Register(hook.NewFunc(HookName, hook.PriorityFeature, onPostInsertChar))
}

func onPostInsertChar(ev editor.PostInsertChar) error {
	ed := ev.Editor
	if !ed.Config().WrapWhenTyping {
		return nil
	}
	width := ed.TextWidth(ev.Doc)
	if width <= 0 {
		return nil
	}

	calc, heuristic := ed.Indentation()
	res, err := Wrap(ev.Doc, ev.View, width, NewBridge(ev.Doc, calc, heuristic))
	if err != nil {
		ed.Logger().Error("auto-wrap failed", "view", ev.View, "error", err)
		return nil
	}
	if len(res.Applied) > 0 || res.Skipped > 0 {
		ed.Logger().Debug("auto-wrap applied", "view", ev.View, "edits", len(res.Applied), "skipped", res.Skipped)
	}
	return nil
}
