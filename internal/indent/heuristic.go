package indent

import "strings"

const (
	openers = "([{"
	closers = ")]}"
)

// HeuristicCalculator implements the none, keep and brackets strategies.
// A script request falls back to keep.
type HeuristicCalculator struct{}

// Indent returns the indentation for req.
func (HeuristicCalculator) Indent(req Request) string {
	switch req.Heuristic {
	case HeuristicNone:
		return ""
	case HeuristicBrackets:
		return bracketIndent(req)
	default:
		return keepIndent(req)
	}
}

func keepIndent(req Request) string {
	return LeadingWhitespace(req.Text.LineText(req.LineToIndent))
}

func bracketIndent(req Request) string {
	ws := keepIndent(req)

	before := strings.TrimRight(req.before(), " \t")
	after := strings.TrimLeft(req.after(), " \t")

	opens := before != "" && strings.ContainsAny(before[len(before)-1:], openers)
	closes := after != "" && strings.ContainsAny(after[:1], closers)

	switch {
	case opens && !closes:
		return ws + req.Style.Unit()
	case closes && !opens:
		return RemoveOneUnit(ws, req.Style.Width)
	default:
		return ws
	}
}
