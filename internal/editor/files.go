package editor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

func (e *Editor) documentOptions() []engine.Option {
	s := e.settings.Load()
	return []engine.Option{
		engine.WithTabWidth(s.cfg.TabWidth),
		engine.WithIndentStyle(s.style),
	}
}

// NewScratch opens an unnamed document holding content and focuses it.
func (e *Editor) NewScratch(content string) engine.ViewID {
	doc := engine.New(append(e.documentOptions(), engine.WithContent(content))...)
	return e.attach(doc)
}

// Open opens path in a new view and focuses it. A file that is already
// open gets another view onto the same document. A missing file opens as
// an empty document that will be created on save.
//
// When position saving is enabled the cursor is restored to where it was
// when the file was last closed.
func (e *Editor) Open(path string) (engine.ViewID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return engine.ViewID{}, err
	}

	if doc := e.findByPath(abs); doc != nil {
		return e.attach(doc), nil
	}

	content, err := os.ReadFile(abs)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return engine.ViewID{}, fmt.Errorf("open %s: %w", path, err)
	}

	doc := engine.New(append(e.documentOptions(),
		engine.WithContent(string(content)),
		engine.WithPath(abs),
		engine.WithLanguage(DetectLanguage(abs)),
	)...)
	view := e.attach(doc)
	if !utf8.Valid(content) {
		e.logger.Error("file is not valid UTF-8, invalid bytes replaced", "path", abs)
		e.mu.Lock()
		e.lossy[doc.ID()] = abs
		e.mu.Unlock()
	}
	e.restorePosition(view, doc)
	return view, nil
}

func (e *Editor) restorePosition(view engine.ViewID, doc *engine.Document) {
	pos, ok, err := e.fileInfo.Load(doc.Path())
	if err != nil {
		e.logger.Error("loading saved position", "path", doc.Path(), "error", err)
		return
	}
	if !ok {
		return
	}
	offset := doc.PointToOffset(buffer.Point{Line: pos.Line, Column: pos.Column})
	if err := doc.SetSelections(view, []cursor.Selection{cursor.NewCursorSelection(offset)}); err != nil {
		e.logger.Error("restoring position", "path", doc.Path(), "error", err)
		return
	}
	e.logger.Debug("position restored", "path", doc.Path(), "line", pos.Line, "column", pos.Column)
}

func (e *Editor) findByPath(abs string) *engine.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, doc := range e.docs {
		if doc.Path() == abs {
			return doc
		}
	}
	return nil
}

func (e *Editor) attach(doc *engine.Document) engine.ViewID {
	view := doc.AddView()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.ID()] = doc
	e.views[view] = doc
	e.order = append(e.order, view)
	e.focus = view
	return view
}

// Close closes view. The primary cursor position is remembered for files
// when position saving is enabled. A document is dropped with its last
// view; unsaved changes are discarded.
func (e *Editor) Close(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}

	if path := doc.Path(); path != "" {
		if sel, err := doc.PrimarySelection(view); err == nil {
			p := doc.OffsetToPoint(sel.Cursor())
			if err := e.fileInfo.Save(path, p.Line, p.Column); err != nil {
				e.logger.Error("saving position", "path", path, "error", err)
			}
		}
	}

	if err := doc.RemoveView(view); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.views, view)
	if doc.ViewCount() == 0 {
		delete(e.docs, doc.ID())
		delete(e.lossy, doc.ID())
	}
	for i, v := range e.order {
		if v == view {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.focus == view {
		e.focus = engine.ViewID{}
		if len(e.order) > 0 {
			e.focus = e.order[len(e.order)-1]
		}
	}
	return nil
}

// Save writes the view's document to its file and clears the modified
// flag. A file that was not valid UTF-8 is never overwritten; SaveAs to
// another path still works.
func (e *Editor) Save(view engine.ViewID) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	path := doc.Path()
	if path == "" {
		return ErrNoPath
	}
	e.mu.RLock()
	original, lossy := e.lossy[doc.ID()]
	e.mu.RUnlock()
	if lossy && original == path {
		return fmt.Errorf("save %s: %w", path, ErrLossyDecode)
	}
	if err := writeFileAtomic(path, doc.Snapshot()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	doc.MarkSaved()
	e.logger.Info("file saved", "path", path, "lines", doc.LineCount())
	return nil
}

// SaveAs sets the view's document path and saves it.
func (e *Editor) SaveAs(view engine.ViewID, path string) error {
	doc, err := e.Document(view)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	doc.SetPath(abs)
	doc.SetLanguage(DetectLanguage(abs))
	return e.Save(view)
}

func writeFileAtomic(path string, content io.WriterTo) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := content.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Document returns the document shown in view.
func (e *Editor) Document(view engine.ViewID) (*engine.Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.views[view]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, view)
	}
	return doc, nil
}

// Views returns the open views in the order they were opened.
func (e *Editor) Views() []engine.ViewID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	views := make([]engine.ViewID, len(e.order))
	copy(views, e.order)
	return views
}

// DocumentCount returns the number of open documents.
func (e *Editor) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}

// Focus returns the focused view. The second result is false when no view
// is open.
func (e *Editor) Focus() (engine.ViewID, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.views[e.focus]
	return e.focus, ok
}

// SetFocus focuses view.
func (e *Editor) SetFocus(view engine.ViewID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.views[view]; !ok {
		return fmt.Errorf("%w: %s", ErrNoDocument, view)
	}
	e.focus = view
	return nil
}
