package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
	"github.com/dshills/typewrap/internal/engine/history"
	"github.com/dshills/typewrap/internal/indent"
)

// Re-export commonly used types for convenience.
type (
	// CharOffset is a character position in the document.
	CharOffset = buffer.CharOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a character range.
	Range = buffer.Range

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// ViewID identifies a view attached to a document.
type ViewID = uuid.UUID

// Document is the facade over a buffer, its views and its history.
type Document struct {
	mu sync.RWMutex

	id      uuid.UUID
	buf     *buffer.Buffer
	views   map[ViewID]*cursor.CursorSet
	history *history.History

	path         string
	language     string
	indentStyle  indent.Style
	tabWidth     int
	textWidth    int
	textWidthSet bool
	modified     bool
	readOnly     bool

	lineEnding     buffer.LineEnding
	lineEndingSet  bool
	maxUndoEntries int
	initContent    string
}

func newDocument(opts []Option) *Document {
	d := &Document{
		id:             uuid.New(),
		views:          make(map[ViewID]*cursor.CursorSet),
		indentStyle:    indent.Spaces(4),
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.history = history.NewHistory(d.maxUndoEntries)
	return d
}

func (d *Document) bufferOptions(content string) []buffer.Option {
	ending := d.lineEnding
	if !d.lineEndingSet {
		ending = buffer.DetectLineEnding(content)
		d.lineEnding = ending
	}
	return []buffer.Option{
		buffer.WithTabWidth(d.tabWidth),
		buffer.WithLineEnding(ending),
	}
}

// New creates a new Document with the given options.
func New(opts ...Option) *Document {
	d := newDocument(opts)
	d.buf = buffer.NewBufferFromString(d.initContent, d.bufferOptions(d.initContent)...)
	d.initContent = ""
	return d
}

// NewFromReader creates a Document from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	d := newDocument(opts)
	content := string(data)
	d.buf = buffer.NewBufferFromString(content, d.bufferOptions(content)...)
	return d, nil
}

// ID returns the document's unique id.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Views

// AddView attaches a new view with a cursor at the start of the document.
func (d *Document) AddView() ViewID {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.New()
	d.views[id] = cursor.NewCursorSetAt(0)
	return id
}

// RemoveView detaches a view.
func (d *Document) RemoveView(view ViewID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.views[view]; !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, view)
	}
	delete(d.views, view)
	return nil
}

// HasView reports whether view is attached.
func (d *Document) HasView(view ViewID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.views[view]
	return ok
}

// ViewCount returns the number of attached views.
func (d *Document) ViewCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.views)
}

// Selections returns a copy of the view's selections in ascending order.
func (d *Document) Selections(view ViewID) ([]Selection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cs, err := d.viewLocked(view)
	if err != nil {
		return nil, err
	}
	return cs.All(), nil
}

// PrimarySelection returns the view's primary selection.
func (d *Document) PrimarySelection(view ViewID) (Selection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cs, err := d.viewLocked(view)
	if err != nil {
		return Selection{}, err
	}
	return cs.Primary(), nil
}

// SetSelections replaces the view's selections. Offsets are clamped to
// the document.
func (d *Document) SetSelections(view ViewID, sels []Selection) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cs, err := d.viewLocked(view)
	if err != nil {
		return err
	}
	cs.SetAll(sels)
	cs.Clamp(d.buf.Len())
	return nil
}

func (d *Document) viewLocked(view ViewID) (*cursor.CursorSet, error) {
	cs, ok := d.views[view]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, view)
	}
	return cs, nil
}

// Editing

// ApplyEdit applies edit on behalf of view. Every view's selections are
// remapped through the edit, the document is marked modified, and the edit
// is recorded for undo with the view's selections before and after it.
func (d *Document) ApplyEdit(view ViewID, edit Edit) (EditResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return EditResult{}, ErrReadOnly
	}
	cs, err := d.viewLocked(view)
	if err != nil {
		return EditResult{}, err
	}

	before := cs.All()
	res, err := d.applyLocked(edit)
	if err != nil {
		return EditResult{}, err
	}
	d.history.Push(history.NewEditCommand(res, before, cs.All()))
	return res, nil
}

func (d *Document) applyLocked(edit Edit) (EditResult, error) {
	res, err := d.buf.ApplyEdit(edit)
	if err != nil {
		return EditResult{}, fmt.Errorf("apply %s: %w", edit, err)
	}
	applied := res.Edit()
	n := d.buf.Len()
	for _, cs := range d.views {
		cursor.TransformCursorSet(cs, applied)
		cs.Clamp(n)
	}
	d.modified = true
	return res, nil
}

// target replays history edits through the document so every view is
// remapped. The document lock is held by the caller.
type target struct {
	d *Document
}

func (t target) ApplyEdit(edit Edit) (EditResult, error) {
	return t.d.applyLocked(edit)
}

// Undo undoes the last change and restores the view's selections.
func (d *Document) Undo(view ViewID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return ErrReadOnly
	}
	cs, err := d.viewLocked(view)
	if err != nil {
		return err
	}
	return d.history.Undo(target{d}, cs)
}

// Redo redoes the last undone change.
func (d *Document) Redo(view ViewID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return ErrReadOnly
	}
	cs, err := d.viewLocked(view)
	if err != nil {
		return err
	}
	return d.history.Redo(target{d}, cs)
}

// BeginUndoGroup starts grouping edits into one undo step.
func (d *Document) BeginUndoGroup(name string) {
	d.history.BeginGroup(name)
}

// EndUndoGroup closes the current undo group.
func (d *Document) EndUndoGroup() {
	d.history.EndGroup()
}

// Transaction runs fn inside an undo group named name.
func (d *Document) Transaction(name string, fn func() error) error {
	return d.history.Transaction(name, fn)
}

// CanUndo returns true if undo is available.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// UndoDescription describes the next undo step.
func (d *Document) UndoDescription() (string, bool) {
	info, ok := d.history.PeekUndo()
	return info.Description, ok
}

// Reading

// Snapshot returns an immutable view of the current text.
func (d *Document) Snapshot() *buffer.Snapshot {
	return d.buf.Snapshot()
}

// Text returns the full content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// Len returns the content length in characters.
func (d *Document) Len() int {
	return d.buf.Len()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return d.buf.LineCount()
}

// LineText returns the content of line without its terminator.
func (d *Document) LineText(line int) string {
	return d.buf.LineText(line)
}

// LineStart returns the offset of the first character of line.
func (d *Document) LineStart(line int) CharOffset {
	return d.buf.LineStart(line)
}

// LineEnd returns the offset past the last content character of line.
func (d *Document) LineEnd(line int) CharOffset {
	return d.buf.LineEnd(line)
}

// CharToLine returns the line containing offset.
func (d *Document) CharToLine(offset CharOffset) int {
	return d.buf.CharToLine(offset)
}

// Slice returns the text in [start, end).
func (d *Document) Slice(start, end CharOffset) string {
	return d.buf.Slice(start, end)
}

// OffsetToPoint converts an offset to line/column.
func (d *Document) OffsetToPoint(offset CharOffset) Point {
	return d.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to an offset.
func (d *Document) PointToOffset(p Point) CharOffset {
	return d.buf.PointToOffset(p)
}

// WriteTo writes the content to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.buf.Snapshot().WriteTo(w)
}

// Metadata

// Path returns the file path, if any.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// SetPath sets the file path.
func (d *Document) SetPath(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.path = path
}

// Language returns the language id.
func (d *Document) Language() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.language
}

// SetLanguage sets the language id.
func (d *Document) SetLanguage(lang string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.language = lang
}

// IndentStyle returns the indentation unit.
func (d *Document) IndentStyle() indent.Style {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indentStyle
}

// SetIndentStyle sets the indentation unit.
func (d *Document) SetIndentStyle(style indent.Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.indentStyle = style
}

// TabWidth returns the tab width.
func (d *Document) TabWidth() int {
	return d.buf.TabWidth()
}

// SetTabWidth sets the tab width.
func (d *Document) SetTabWidth(width int) {
	d.buf.SetTabWidth(width)
}

// TextWidth returns the per-document text width, if one is set.
func (d *Document) TextWidth() (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.textWidth, d.textWidthSet
}

// SetTextWidth overrides the editor-wide text width for this document.
func (d *Document) SetTextWidth(width int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.textWidth = max(width, 0)
	d.textWidthSet = true
}

// ClearTextWidth removes the per-document override.
func (d *Document) ClearTextWidth() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.textWidth = 0
	d.textWidthSet = false
}

// LineEnding returns the line ending style.
func (d *Document) LineEnding() LineEnding {
	return d.buf.LineEnding()
}

// RevisionID returns the buffer revision.
func (d *Document) RevisionID() buffer.RevisionID {
	return d.buf.RevisionID()
}

// IsModified reports whether the document changed since it was last saved.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modified = false
}

// IsReadOnly reports whether edits are rejected.
func (d *Document) IsReadOnly() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.readOnly
}
