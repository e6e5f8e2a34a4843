package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
	"github.com/dshills/typewrap/internal/indent"
)

func newDocWithCursor(t *testing.T, content string, offset CharOffset, opts ...Option) (*Document, ViewID) {
	t.Helper()
	doc := New(append([]Option{WithContent(content)}, opts...)...)
	view := doc.AddView()
	if err := doc.SetSelections(view, []Selection{cursor.NewCursorSelection(offset)}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}
	return doc, view
}

func cursorOf(t *testing.T, doc *Document, view ViewID) CharOffset {
	t.Helper()
	sel, err := doc.PrimarySelection(view)
	if err != nil {
		t.Fatalf("PrimarySelection: %v", err)
	}
	return sel.Cursor()
}

func TestNewDocument(t *testing.T) {
	doc := New()

	if doc.Len() != 0 {
		t.Errorf("expected empty document, got %d chars", doc.Len())
	}
	if doc.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", doc.LineCount())
	}
	if doc.IsModified() {
		t.Error("new document should not be modified")
	}
	if doc.TabWidth() != DefaultTabWidth {
		t.Errorf("TabWidth() = %d", doc.TabWidth())
	}
	if doc.IndentStyle() != indent.Spaces(4) {
		t.Errorf("IndentStyle() = %v", doc.IndentStyle())
	}
	if _, ok := doc.TextWidth(); ok {
		t.Error("no text width override expected")
	}
}

func TestNewDocumentDetectsLineEnding(t *testing.T) {
	doc := New(WithContent("a\r\nb\r\n"))

	if doc.LineEnding() != LineEndingCRLF {
		t.Errorf("LineEnding() = %v, want CRLF", doc.LineEnding())
	}
	if doc.Text() != "a\r\nb\r\n" {
		t.Errorf("content changed: %q", doc.Text())
	}
	if doc.LineText(1) != "b" {
		t.Errorf("LineText(1) = %q", doc.LineText(1))
	}
}

func TestNewFromReader(t *testing.T) {
	doc, err := NewFromReader(strings.NewReader("one\ntwo"), WithPath("/tmp/x.txt"), WithLanguage("text"))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if doc.LineCount() != 2 {
		t.Errorf("LineCount() = %d", doc.LineCount())
	}
	if doc.Path() != "/tmp/x.txt" || doc.Language() != "text" {
		t.Errorf("metadata = %q %q", doc.Path(), doc.Language())
	}
}

func TestApplyEditMovesCursor(t *testing.T) {
	doc, view := newDocWithCursor(t, "hello", 5)

	if _, err := doc.ApplyEdit(view, buffer.NewInsert(5, "!")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if doc.Text() != "hello!" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if got := cursorOf(t, doc, view); got != 6 {
		t.Errorf("cursor = %d, want 6", got)
	}
	if !doc.IsModified() {
		t.Error("document should be modified")
	}

	doc.MarkSaved()
	if doc.IsModified() {
		t.Error("MarkSaved should clear the modified flag")
	}
}

func TestApplyEditRemapsAllViews(t *testing.T) {
	doc, first := newDocWithCursor(t, "the quick brown fox", 19)
	second := doc.AddView()
	if err := doc.SetSelections(second, []Selection{cursor.NewSelection(4, 9)}); err != nil {
		t.Fatal(err)
	}

	// Replace the space after "quick" with a newline and indentation.
	if _, err := doc.ApplyEdit(first, buffer.NewEdit(buffer.NewRange(9, 10), "\n  ")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	if got := cursorOf(t, doc, first); got != 21 {
		t.Errorf("first view cursor = %d, want 21", got)
	}
	sels, err := doc.Selections(second)
	if err != nil {
		t.Fatal(err)
	}
	if sels[0].Range() != buffer.NewRange(4, 9) {
		t.Errorf("second view selection = %v, want [4,9)", sels[0].Range())
	}
}

func TestApplyEditInvalidRange(t *testing.T) {
	doc, view := newDocWithCursor(t, "abc", 0)

	_, err := doc.ApplyEdit(view, buffer.NewDelete(2, 10))
	if !errors.Is(err, ErrRangeInvalid) && !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected range error, got %v", err)
	}
	if doc.Text() != "abc" || doc.IsModified() || doc.CanUndo() {
		t.Error("failed edit should leave the document untouched")
	}
}

func TestApplyEditUnknownView(t *testing.T) {
	doc := New(WithContent("abc"))

	var other ViewID
	if _, err := doc.ApplyEdit(other, buffer.NewInsert(0, "x")); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("expected ErrViewNotFound, got %v", err)
	}
}

func TestReadOnlyDocument(t *testing.T) {
	doc, view := newDocWithCursor(t, "abc", 0, WithReadOnly())

	if _, err := doc.ApplyEdit(view, buffer.NewInsert(0, "x")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := doc.Undo(view); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly from Undo, got %v", err)
	}
}

func TestUndoRestoresTextAndCursor(t *testing.T) {
	doc, view := newDocWithCursor(t, "ab", 2)

	if _, err := doc.ApplyEdit(view, buffer.NewInsert(2, "c")); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetSelections(view, []Selection{cursor.NewCursorSelection(3)}); err != nil {
		t.Fatal(err)
	}

	if err := doc.Undo(view); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if doc.Text() != "ab" {
		t.Errorf("after undo Text() = %q", doc.Text())
	}
	if got := cursorOf(t, doc, view); got != 2 {
		t.Errorf("after undo cursor = %d, want 2", got)
	}

	if err := doc.Redo(view); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if doc.Text() != "abc" {
		t.Errorf("after redo Text() = %q", doc.Text())
	}
	if got := cursorOf(t, doc, view); got != 3 {
		t.Errorf("after redo cursor = %d, want 3", got)
	}
}

func TestUndoRemapsOtherViews(t *testing.T) {
	doc, first := newDocWithCursor(t, "abc", 0)
	second := doc.AddView()
	if err := doc.SetSelections(second, []Selection{cursor.NewCursorSelection(3)}); err != nil {
		t.Fatal(err)
	}

	if _, err := doc.ApplyEdit(first, buffer.NewInsert(0, "xx")); err != nil {
		t.Fatal(err)
	}
	if got := cursorOf(t, doc, second); got != 5 {
		t.Fatalf("second cursor after edit = %d, want 5", got)
	}

	if err := doc.Undo(first); err != nil {
		t.Fatal(err)
	}
	if got := cursorOf(t, doc, second); got != 3 {
		t.Errorf("second cursor after undo = %d, want 3", got)
	}
}

func TestUndoEmpty(t *testing.T) {
	doc, view := newDocWithCursor(t, "", 0)

	if err := doc.Undo(view); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := doc.Redo(view); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestTransactionIsOneUndoStep(t *testing.T) {
	doc, view := newDocWithCursor(t, "the quick brown fox", 19)

	err := doc.Transaction("auto-wrap", func() error {
		if _, err := doc.ApplyEdit(view, buffer.NewDelete(15, 16)); err != nil {
			return err
		}
		_, err := doc.ApplyEdit(view, buffer.NewInsert(15, "\n"))
		return err
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if doc.Text() != "the quick brown\nfox" {
		t.Fatalf("Text() = %q", doc.Text())
	}
	if desc, _ := doc.UndoDescription(); desc != "auto-wrap" {
		t.Errorf("UndoDescription() = %q", desc)
	}

	if err := doc.Undo(view); err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "the quick brown fox" {
		t.Errorf("one undo should revert the transaction, got %q", doc.Text())
	}
	if doc.CanUndo() {
		t.Error("nothing else should be undoable")
	}
}

func TestSetSelectionsClamps(t *testing.T) {
	doc, view := newDocWithCursor(t, "abc", 0)

	if err := doc.SetSelections(view, []Selection{cursor.NewCursorSelection(50)}); err != nil {
		t.Fatal(err)
	}
	if got := cursorOf(t, doc, view); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestRemoveView(t *testing.T) {
	doc := New()
	view := doc.AddView()

	if !doc.HasView(view) || doc.ViewCount() != 1 {
		t.Fatal("view should be attached")
	}
	if err := doc.RemoveView(view); err != nil {
		t.Fatal(err)
	}
	if doc.HasView(view) {
		t.Error("view should be detached")
	}
	if err := doc.RemoveView(view); !errors.Is(err, ErrViewNotFound) {
		t.Errorf("expected ErrViewNotFound, got %v", err)
	}
}

func TestTextWidthOverride(t *testing.T) {
	doc := New(WithTextWidth(72))

	if w, ok := doc.TextWidth(); !ok || w != 72 {
		t.Errorf("TextWidth() = %d, %v", w, ok)
	}
	doc.SetTextWidth(0)
	if w, ok := doc.TextWidth(); !ok || w != 0 {
		t.Errorf("explicit zero should be kept, got %d, %v", w, ok)
	}
	doc.ClearTextWidth()
	if _, ok := doc.TextWidth(); ok {
		t.Error("override should be cleared")
	}
}

func TestWriteTo(t *testing.T) {
	doc := New(WithContent("x\ny"))

	var sb strings.Builder
	n, err := doc.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || sb.String() != "x\ny" {
		t.Errorf("WriteTo wrote %d bytes %q", n, sb.String())
	}
}
