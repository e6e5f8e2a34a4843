package indent

import (
	"fmt"
	"strings"
)

// Style is the document's indentation unit: a tab or a run of spaces.
type Style struct {
	Tabs  bool
	Width int
}

// Spaces returns a style indenting with n spaces.
func Spaces(n int) Style {
	if n <= 0 {
		n = 4
	}
	return Style{Width: n}
}

// Tabs returns a style indenting with tabs.
func Tabs() Style {
	return Style{Tabs: true, Width: 1}
}

// Unit returns one level of indentation.
func (s Style) Unit() string {
	if s.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", max(s.Width, 1))
}

// String returns a human-readable representation of the style.
func (s Style) String() string {
	if s.Tabs {
		return "tabs"
	}
	return fmt.Sprintf("%d spaces", s.Width)
}

// LeadingWhitespace returns the run of spaces and tabs that starts s.
func LeadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}

// RemoveOneUnit strips one indentation level from the start of ws: a
// leading tab, or up to width spaces.
func RemoveOneUnit(ws string, width int) string {
	if ws == "" {
		return ws
	}
	if ws[0] == '\t' {
		return ws[1:]
	}
	n := 0
	for n < len(ws) && n < width && ws[n] == ' ' {
		n++
	}
	return ws[n:]
}
