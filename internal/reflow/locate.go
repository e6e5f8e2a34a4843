package reflow

import (
	"unicode/utf8"
)

// Locate returns the character index of the whitespace at which line
// should be broken to fit width.
//
// The last whitespace that still lies within the first width characters is
// preferred. When there is none, the first whitespace past the limit is used
// so an overlong word ends up alone on its line. Leading indentation is never
// a break point. The second result is false when no break is needed or
// possible.
func Locate(line string, width int) (int, bool) {
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return 0, false
	}

	lastBefore := -1
	indented := true
	i := 0
	for _, r := range line {
		if !isWhitespace(r) {
			indented = false
		} else if !indented {
			if i+1 <= width {
				lastBefore = i
			} else {
				if lastBefore >= 0 {
					return lastBefore, true
				}
				return i, true
			}
		}
		i++
	}
	if lastBefore >= 0 {
		return lastBefore, true
	}
	return 0, false
}
