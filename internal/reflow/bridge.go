package reflow

import (
	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/indent"
)

// Indenter supplies the indentation of the line a break starts.
type Indenter interface {
	IndentFor(snap *buffer.Snapshot, brk buffer.CharOffset) string
}

// Bridge hands break positions to an indentation calculator together with
// the document settings it needs. The result is used as is.
type Bridge struct {
	Calculator indent.Calculator
	Heuristic  indent.Heuristic
	Style      indent.Style
	TabWidth   int
	Language   string
}

// NewBridge creates a Bridge for doc.
func NewBridge(doc *engine.Document, calc indent.Calculator, heuristic indent.Heuristic) Bridge {
	return Bridge{
		Calculator: calc,
		Heuristic:  heuristic,
		Style:      doc.IndentStyle(),
		TabWidth:   doc.TabWidth(),
		Language:   doc.Language(),
	}
}

// IndentFor returns the indentation for a line break at brk. The line of
// brk is both the current line and the reference line. A missing or
// panicking calculator yields "".
func (b Bridge) IndentFor(snap *buffer.Snapshot, brk buffer.CharOffset) string {
	line := snap.CharToLine(brk)
	return indent.Safe(b.Calculator).Indent(indent.Request{
		Language:     b.Language,
		Heuristic:    b.Heuristic,
		Style:        b.Style,
		TabWidth:     b.TabWidth,
		Text:         snap,
		CurrentLine:  line,
		Position:     brk,
		LineToIndent: line,
	})
}
