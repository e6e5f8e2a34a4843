package buffer

import (
	"io"
	"unicode/utf8"

	"github.com/dshills/typewrap/internal/engine/rope"
)

// Text is an immutable run of characters backed by a rope.
// Operations that modify text return a new Text and leave the receiver intact,
// so a Text can be shared freely between buffers and snapshots.
// "\r\n", "\n" and "\r" all terminate a line.
type Text struct {
	r rope.Rope
}

// NewText creates a Text from a string.
func NewText(s string) Text {
	return Text{r: rope.FromString(s)}
}

// Len returns the number of characters.
func (t Text) Len() int {
	return t.r.Len()
}

// IsEmpty returns true if the text has no characters.
func (t Text) IsEmpty() bool {
	return t.r.IsEmpty()
}

// String returns the full text.
func (t Text) String() string {
	return t.r.String()
}

// WriteTo writes the text to w without building one large string.
func (t Text) WriteTo(w io.Writer) (int64, error) {
	return t.r.WriteTo(w)
}

// Slice returns the characters in [start, end) as a string.
// Out-of-range bounds are clamped.
func (t Text) Slice(start, end CharOffset) string {
	return t.r.Slice(start, end)
}

// RuneAt returns the character at offset.
func (t Text) RuneAt(offset CharOffset) (rune, bool) {
	r, ok := t.r.RuneAt(offset)
	if !ok {
		return utf8.RuneError, false
	}
	return r, true
}

// LineCount returns the number of lines. It is never less than 1.
func (t Text) LineCount() int {
	return t.r.LineCount()
}

// LineStart returns the offset of the first character of line.
// Lines past the end map to the end of the text.
func (t Text) LineStart(line int) CharOffset {
	return t.r.LineStart(line)
}

// LineEnd returns the offset just past the last content character of line,
// before its terminator.
func (t Text) LineEnd(line int) CharOffset {
	return t.r.LineEnd(line)
}

// LineText returns the content of line without its terminator.
func (t Text) LineText(line int) string {
	return t.Slice(t.LineStart(line), t.LineEnd(line))
}

// LineLen returns the number of content characters on line.
func (t Text) LineLen(line int) int {
	return t.LineEnd(line) - t.LineStart(line)
}

// CharToLine returns the line containing offset. Offsets on a terminator
// belong to the line it terminates.
func (t Text) CharToLine(offset CharOffset) int {
	return t.r.CharToLine(offset)
}

// OffsetToPoint converts an offset to line/column.
func (t Text) OffsetToPoint(offset CharOffset) Point {
	offset = min(max(offset, 0), t.Len())
	line := t.CharToLine(offset)
	return Point{Line: line, Column: offset - t.LineStart(line)}
}

// PointToOffset converts line/column to an offset. Columns past the end of
// the line clamp to the line end.
func (t Text) PointToOffset(p Point) CharOffset {
	if p.Line >= t.LineCount() {
		return t.Len()
	}
	if p.Line < 0 {
		return 0
	}
	start, end := t.LineStart(p.Line), t.LineEnd(p.Line)
	return min(start+max(p.Column, 0), end)
}

// Replace returns a new Text with [start, end) replaced by s.
func (t Text) Replace(start, end CharOffset, s string) Text {
	return Text{r: t.r.Replace(start, end, s)}
}
