package reflow

import (
	"fmt"
	"sort"

	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

// Request is one line break to make. The whitespace in [Break, SkipTo) is
// replaced; Break is the whitespace Locate chose and SkipTo is the first
// non-whitespace character after it, or the end of the line.
type Request struct {
	Break  buffer.CharOffset
	SkipTo buffer.CharOffset
}

// Range returns the replaced span.
func (r Request) Range() buffer.Range {
	return buffer.NewRange(r.Break, r.SkipTo)
}

func (r Request) String() string {
	return fmt.Sprintf("wrap[%d,%d)", r.Break, r.SkipTo)
}

// remap moves r through an edit applied before it.
func (r Request) remap(edit buffer.Edit) Request {
	return Request{
		Break:  cursor.TransformOffset(r.Break, edit),
		SkipTo: cursor.TransformOffset(r.SkipTo, edit),
	}
}

// Collect returns the break requests for the lines under sels, computed
// against snap alone. Cursors sharing a line produce one request. The
// result is sorted by Break; a request overlapping an earlier one is
// dropped.
func Collect(snap *buffer.Snapshot, sels []cursor.Selection, width int) []Request {
	if width <= 0 {
		return nil
	}

	var reqs []Request
	for _, sel := range sels {
		if req, ok := requestForLine(snap, snap.CharToLine(sel.Cursor()), width); ok {
			reqs = append(reqs, req)
		}
	}
	return normalize(reqs)
}

func requestForLine(snap *buffer.Snapshot, line, width int) (Request, bool) {
	if snap.LineLen(line) <= width {
		return Request{}, false
	}

	start, end := snap.LineStart(line), snap.LineEnd(line)
	idx, ok := Locate(snap.Slice(start, end), width)
	if !ok {
		return Request{}, false
	}

	brk := start + idx
	skip := brk + 1
	for skip < end {
		r, _ := snap.RuneAt(skip)
		if !isWhitespace(r) {
			break
		}
		skip++
	}
	return Request{Break: brk, SkipTo: skip}, true
}

func normalize(reqs []Request) []Request {
	if len(reqs) < 2 {
		return reqs
	}
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].Break != reqs[j].Break {
			return reqs[i].Break < reqs[j].Break
		}
		return reqs[i].SkipTo < reqs[j].SkipTo
	})

	out := reqs[:1]
	for _, r := range reqs[1:] {
		last := out[len(out)-1]
		if r == last || r.Break < last.SkipTo {
			continue
		}
		out = append(out, r)
	}
	return out
}
