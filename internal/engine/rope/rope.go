package rope

import (
	"io"
	"strings"
)

// Rope is an immutable sequence of characters.
// The zero value is an empty rope.
type Rope struct {
	root *node
}

// FromString creates a rope holding s. Invalid UTF-8 is replaced with
// U+FFFD, one replacement per bad byte.
func FromString(s string) Rope {
	chunks := splitIntoChunks(validText(s))
	if len(chunks) == 0 {
		return Rope{}
	}

	level := make([]*node, len(chunks))
	for i, c := range chunks {
		level[i] = leafOf(c)
	}
	for len(level) > 1 {
		parents := make([]*node, 0, len(level)/maxChildren+1)
		for i := 0; i < len(level); i += maxChildren {
			end := min(i+maxChildren, len(level))
			parents = append(parents, newInternal(level[i:end:end]))
		}
		level = parents
	}
	return Rope{root: level[0]}
}

// Summary returns the metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{Flags: FlagASCII}
	}
	return r.root.sum
}

// Len returns the number of characters.
func (r Rope) Len() int {
	return r.Summary().Chars
}

// IsEmpty returns true if the rope has no characters.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines. It is never less than 1.
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// String returns the full text.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.sum.Bytes)
	r.root.appendRange(&sb, 0, r.root.sum.Chars)
	return sb.String()
}

// WriteTo writes the text to w chunk by chunk.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	if r.root == nil {
		return 0, nil
	}
	return r.root.writeTo(w)
}

// Slice returns the characters in [start, end). Bounds are clamped.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// RuneAt returns the character at offset.
func (r Rope) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.runeAt(offset), true
}

// Replace returns a rope with [start, end) replaced by s.
// Bounds are clamped.
func (r Rope) Replace(start, end int, s string) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if end < start {
		end = start
	}
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: join(join(left, FromString(s).root), right)}
}

// LineStart returns the offset of the first character of line.
// Lines past the end map to the end of the rope.
func (r Rope) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	off := r.root.breakAfter(line, false)
	if r.is(off-1, '\r') && r.is(off, '\n') {
		off++
	}
	return off
}

// LineEnd returns the offset just past the last content character of
// line, before its terminator.
func (r Rope) LineEnd(line int) int {
	line = max(line, 0)
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	next := r.LineStart(line + 1)
	if r.is(next-2, '\r') && r.is(next-1, '\n') {
		return next - 2
	}
	return next - 1
}

// CharToLine returns the line containing offset. Offsets on a terminator
// belong to the line it ends.
func (r Rope) CharToLine(offset int) int {
	offset = r.clamp(offset)
	if offset == 0 {
		return 0
	}
	line := r.root.prefix(offset).Lines
	if r.is(offset-1, '\r') && r.is(offset, '\n') {
		line--
	}
	return line
}

func (r Rope) is(offset int, want rune) bool {
	got, ok := r.RuneAt(offset)
	return ok && got == want
}

func (r Rope) clamp(offset int) int {
	return min(max(offset, 0), r.Len())
}
