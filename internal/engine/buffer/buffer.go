package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds the text of a document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       Text
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		text:       NewText(""),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = NewText(b.normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first; CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		data = []byte(strings.ToValidUTF8(string(data), string(utf8.RuneError)))
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.String()
}

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end CharOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Slice(start, end)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LineCount()
}

// LineText returns the text of a line without its terminator.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LineText(line)
}

// LineStart returns the offset of the start of a line.
func (b *Buffer) LineStart(line int) CharOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LineStart(line)
}

// LineEnd returns the offset of the end of a line, before its terminator.
func (b *Buffer) LineEnd(line int) CharOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LineEnd(line)
}

// CharToLine returns the line containing offset.
func (b *Buffer) CharToLine(offset CharOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.CharToLine(offset)
}

// RuneAt returns the character at offset.
func (b *Buffer) RuneAt(offset CharOffset) (rune, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.RuneAt(offset)
}

// OffsetToPoint converts an offset to line/column.
func (b *Buffer) OffsetToPoint(offset CharOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.OffsetToPoint(offset)
}

// PointToOffset converts line/column to an offset.
func (b *Buffer) PointToOffset(p Point) CharOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.PointToOffset(p)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the offset just past the inserted text.
func (b *Buffer) Insert(offset CharOffset, text string) (CharOffset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		if errors.Is(err, ErrRangeInvalid) {
			return 0, ErrOffsetOutOfRange
		}
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end CharOffset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces text in the given range with new text.
// Returns the offset just past the replacement.
func (b *Buffer) Replace(start, end CharOffset, text string) (CharOffset, error) {
	res, err := b.ApplyEdit(NewEdit(Range{Start: start, End: end}, text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := edit.Range
	if r.Start < 0 || r.Start > r.End || r.End > b.text.Len() {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.text.Slice(r.Start, r.End)
	text := b.normalizeLineEndings(edit.NewText)
	b.text = b.text.Replace(r.Start, r.End, text)
	b.revisionID = NewRevisionID()

	n := utf8.RuneCountInString(text)
	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: r.Start + n},
		OldText:  oldText,
		NewText:  text,
		Delta:    n - r.Len(),
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.IsEmpty()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{
		Text:       b.text, // immutable, safe to share
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}
