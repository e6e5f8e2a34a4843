package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(i); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("a\r\nb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "a\nb" {
		t.Errorf("expected CRLF normalized to LF, got %q", b.Text())
	}
}

func TestLengthsAreCharacters(t *testing.T) {
	b := NewBufferFromString("héllo wörld")

	if b.Len() != 11 {
		t.Errorf("expected 11 characters, got %d", b.Len())
	}
	if r, ok := b.RuneAt(1); !ok || r != 'é' {
		t.Errorf("RuneAt(1) = %q, %v", r, ok)
	}
	if got := b.Slice(6, 11); got != "wörld" {
		t.Errorf("Slice(6, 11) = %q", got)
	}
}

func TestLineBounds(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		opts      []Option
		line      int
		wantStart CharOffset
		wantEnd   CharOffset
	}{
		{"first line excludes newline", "abc\ndef", nil, 0, 0, 3},
		{"final line runs to end", "abc\ndef", nil, 1, 4, 7},
		{"empty final line", "abc\n", nil, 1, 4, 4},
		{"crlf excludes both", "ab\r\ncd", []Option{WithLineEnding(LineEndingCRLF)}, 0, 0, 2},
		{"crlf next line", "ab\r\ncd", []Option{WithLineEnding(LineEndingCRLF)}, 1, 4, 6},
		{"cr only", "ab\rcd", []Option{WithLineEnding(LineEndingCR)}, 1, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text, tt.opts...)
			if got := b.LineStart(tt.line); got != tt.wantStart {
				t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.wantStart)
			}
			if got := b.LineEnd(tt.line); got != tt.wantEnd {
				t.Errorf("LineEnd(%d) = %d, want %d", tt.line, got, tt.wantEnd)
			}
		})
	}
}

func TestCharToLine(t *testing.T) {
	b := NewBufferFromString("ab\ncd\n\nef")

	tests := []struct {
		offset CharOffset
		want   int
	}{
		{0, 0}, {2, 0}, {3, 1}, {5, 1}, {6, 2}, {7, 3}, {9, 3}, {100, 3}, {-1, 0},
	}
	for _, tt := range tests {
		if got := b.CharToLine(tt.offset); got != tt.want {
			t.Errorf("CharToLine(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestPointConversion(t *testing.T) {
	b := NewBufferFromString("añb\ncd")

	p := b.OffsetToPoint(5)
	if p != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(5) = %v", p)
	}
	if off := b.PointToOffset(Point{Line: 1, Column: 1}); off != 5 {
		t.Errorf("PointToOffset = %d, want 5", off)
	}
	if off := b.PointToOffset(Point{Line: 0, Column: 99}); off != 3 {
		t.Errorf("column past end should clamp to line end, got %d", off)
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc")

	if _, err := b.Insert(10, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferDeleteInvalidRange(t *testing.T) {
	b := NewBufferFromString("abc")

	if err := b.Delete(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestApplyEditNormalizesNewlines(t *testing.T) {
	b := NewBufferFromString("ab cd", WithLineEnding(LineEndingCRLF))

	res, err := b.ApplyEdit(NewEdit(Range{Start: 2, End: 3}, "\n  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "ab\r\n  cd" {
		t.Errorf("got %q", b.Text())
	}
	if res.Delta != 3 {
		t.Errorf("expected delta 3 after normalization, got %d", res.Delta)
	}
	if res.NewRange != (Range{Start: 2, End: 6}) {
		t.Errorf("NewRange = %v", res.NewRange)
	}
	if res.OldText != " " {
		t.Errorf("OldText = %q", res.OldText)
	}
}

func TestRevisionChangesOnEdit(t *testing.T) {
	b := NewBufferFromString("abc")
	before := b.RevisionID()

	if _, err := b.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}
	if b.RevisionID() == before {
		t.Error("revision should change after an edit")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("original")
	snap := b.Snapshot()

	if _, err := b.Replace(0, 8, "changed"); err != nil {
		t.Fatal(err)
	}
	if snap.String() != "original" {
		t.Errorf("snapshot changed: %q", snap.String())
	}
	if snap.RevisionID() == b.RevisionID() {
		t.Error("snapshot revision should differ from buffer revision")
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"no newline", LineEndingLF},
		{"a\nb\nc", LineEndingLF},
		{"a\r\nb\r\nc\n", LineEndingCRLF},
		{"a\rb\rc", LineEndingCR},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestEditsInLargeBuffer(t *testing.T) {
	line := "the quick brown fox jumps over the lazy dog\n"
	b := NewBufferFromString(strings.Repeat(line, 70000))
	mid := b.LineStart(35000)

	for i := 0; i < 100; i++ {
		if _, err := b.Insert(mid+i, "x"); err != nil {
			t.Fatal(err)
		}
	}
	if got := b.LineText(35000); got != strings.Repeat("x", 100)+strings.TrimSuffix(line, "\n") {
		t.Errorf("LineText(35000) = %q", got)
	}
	if b.LineCount() != 70001 {
		t.Errorf("LineCount = %d", b.LineCount())
	}
	if got := b.CharToLine(mid + 50); got != 35000 {
		t.Errorf("CharToLine = %d", got)
	}
}

func TestSnapshotWriteTo(t *testing.T) {
	b := NewBufferFromString("one\r\ntwo", WithLineEnding(LineEndingCRLF))

	var sb strings.Builder
	n, err := b.Snapshot().WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if sb.String() != "one\r\ntwo" || n != 8 {
		t.Errorf("wrote %q (%d bytes)", sb.String(), n)
	}
}
