package reflow

import (
	"fmt"

	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/engine/buffer"
)

// UndoGroup names the undo step of one wrap pass.
const UndoGroup = "auto-wrap"

// Result reports what Apply did.
type Result struct {
	// Applied holds the requests that were applied, at the positions they
	// had when applied.
	Applied []Request

	// Skipped counts requests that no longer matched the text.
	Skipped int
}

// Apply replaces the whitespace of each request with a line break and the
// indentation from ind. Requests must be sorted and must not overlap, as
// Collect returns them. All edits form one undo step.
//
// After each edit the remaining requests are moved through it. A request
// whose span is no longer whitespace on a single line is skipped.
// An error from the document stops the pass; edits made before it stay in
// the undo step.
func Apply(doc *engine.Document, view engine.ViewID, reqs []Request, ind Indenter) (Result, error) {
	var res Result
	if len(reqs) == 0 {
		return res, nil
	}

	pending := make([]Request, len(reqs))
	copy(pending, reqs)

	err := doc.Transaction(UndoGroup, func() error {
		for i, req := range pending {
			snap := doc.Snapshot()
			if !matches(snap, req) {
				res.Skipped++
				continue
			}

			text := "\n"
			if ind != nil {
				text += ind.IndentFor(snap, req.Break)
			}
			applied, err := doc.ApplyEdit(view, buffer.NewEdit(req.Range(), text))
			if err != nil {
				return fmt.Errorf("auto-wrap at %d: %w", req.Break, err)
			}
			res.Applied = append(res.Applied, req)

			edit := applied.Edit()
			for j := i + 1; j < len(pending); j++ {
				pending[j] = pending[j].remap(edit)
			}
		}
		return nil
	})
	return res, err
}

// matches reports whether req still spans a whitespace run inside one line
// of snap.
func matches(snap *buffer.Snapshot, req Request) bool {
	if req.Break < 0 || req.Break >= req.SkipTo || req.SkipTo > snap.Len() {
		return false
	}
	if req.SkipTo > snap.LineEnd(snap.CharToLine(req.Break)) {
		return false
	}
	for off := req.Break; off < req.SkipTo; off++ {
		r, _ := snap.RuneAt(off)
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}

// Wrap collects the requests for view's cursors and applies them.
func Wrap(doc *engine.Document, view engine.ViewID, width int, ind Indenter) (Result, error) {
	sels, err := doc.Selections(view)
	if err != nil {
		return Result{}, err
	}
	return Apply(doc, view, Collect(doc.Snapshot(), sels, width), ind)
}
