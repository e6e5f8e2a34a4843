package engine

import (
	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/indent"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithTabWidth sets the tab width.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithLineEnding sets the line ending style. Without it the style is
// detected from the initial content.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = ending
		d.lineEndingSet = true
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only document.
// Edits return ErrReadOnly.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// WithPath sets the file the document was loaded from.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithLanguage sets the language id.
func WithLanguage(lang string) Option {
	return func(d *Document) {
		d.language = lang
	}
}

// WithIndentStyle sets the indentation unit.
func WithIndentStyle(style indent.Style) Option {
	return func(d *Document) {
		d.indentStyle = style
	}
}

// WithTextWidth sets a per-document text width that overrides the
// editor-wide setting.
func WithTextWidth(width int) Option {
	return func(d *Document) {
		if width >= 0 {
			d.textWidth = width
			d.textWidthSet = true
		}
	}
}
