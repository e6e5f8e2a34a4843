package indent

import (
	"fmt"
	"strings"

	"github.com/dshills/typewrap/internal/engine/buffer"
)

// Heuristic selects an indentation strategy.
type Heuristic int

const (
	// HeuristicNone never indents.
	HeuristicNone Heuristic = iota
	// HeuristicKeep copies the current line's indentation.
	HeuristicKeep
	// HeuristicBrackets adjusts the kept indentation around brackets.
	HeuristicBrackets
	// HeuristicScript delegates to a Lua script.
	HeuristicScript
)

// String returns the configuration name of the heuristic.
func (h Heuristic) String() string {
	switch h {
	case HeuristicNone:
		return "none"
	case HeuristicKeep:
		return "keep"
	case HeuristicBrackets:
		return "brackets"
	case HeuristicScript:
		return "script"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

// ParseHeuristic converts a configuration name to a Heuristic.
func ParseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(s) {
	case "none":
		return HeuristicNone, nil
	case "keep", "":
		return HeuristicKeep, nil
	case "brackets":
		return HeuristicBrackets, nil
	case "script":
		return HeuristicScript, nil
	default:
		return HeuristicNone, fmt.Errorf("unknown indent heuristic %q", s)
	}
}

// Request describes a line break that needs indentation.
type Request struct {
	// Language is the document's language id, possibly empty.
	Language string
	// Heuristic is the configured strategy.
	Heuristic Heuristic
	// Style is the document's indentation unit.
	Style Style
	// TabWidth is the display width of a tab.
	TabWidth int
	// Text is the document content the break is computed against.
	Text *buffer.Snapshot
	// CurrentLine is the line containing Position.
	CurrentLine int
	// Position is the offset where the new line starts.
	Position buffer.CharOffset
	// LineToIndent is the line whose indentation is the reference.
	LineToIndent int
}

// before returns the text of CurrentLine before Position.
func (r Request) before() string {
	return r.Text.Slice(r.Text.LineStart(r.CurrentLine), r.Position)
}

// after returns the text of CurrentLine from Position onward.
func (r Request) after() string {
	return r.Text.Slice(r.Position, r.Text.LineEnd(r.CurrentLine))
}

// Calculator computes indentation for a line break.
type Calculator interface {
	Indent(req Request) string
}

// CalculatorFunc adapts a function to the Calculator interface.
type CalculatorFunc func(req Request) string

// Indent calls f(req).
func (f CalculatorFunc) Indent(req Request) string {
	return f(req)
}

// Safe wraps c so that a nil calculator or a panic inside it yields "".
func Safe(c Calculator) Calculator {
	return CalculatorFunc(func(req Request) (out string) {
		if c == nil {
			return ""
		}
		defer func() {
			if recover() != nil {
				out = ""
			}
		}()
		return c.Indent(req)
	})
}
