package editor

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/typewrap/internal/config"
	"github.com/dshills/typewrap/internal/engine"
	"github.com/dshills/typewrap/internal/fileinfo"
	"github.com/dshills/typewrap/internal/hook"
	"github.com/dshills/typewrap/internal/indent"
)

// Logger is the logging interface used by the editor.
type Logger = hook.Logger

// settings is the immutable bundle swapped in by SetConfig.
type settings struct {
	cfg       config.EditorConfig
	raw       indent.Calculator
	owned     bool
	calc      indent.Calculator
	heuristic indent.Heuristic
	style     indent.Style
}

// Editor owns open documents and their views.
type Editor struct {
	mu    sync.RWMutex
	docs  map[uuid.UUID]*engine.Document
	views map[engine.ViewID]*engine.Document
	order []engine.ViewID
	focus engine.ViewID
	lossy map[uuid.UUID]string

	settings   atomic.Pointer[settings]
	customCalc indent.Calculator
	postInsert *hook.Registry[PostInsertChar]
	fileInfo   *fileinfo.Store
	logger     Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithConfig sets the initial editor settings.
func WithConfig(cfg config.EditorConfig) Option {
	return func(e *Editor) {
		e.settings.Store(&settings{cfg: cfg})
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFileInfo sets the store used to remember cursor positions. Without
// it a store is created from the file-info settings.
func WithFileInfo(s *fileinfo.Store) Option {
	return func(e *Editor) {
		e.fileInfo = s
	}
}

// WithCalculator replaces the indentation calculator chosen from the
// settings.
func WithCalculator(c indent.Calculator) Option {
	return func(e *Editor) {
		e.customCalc = c
	}
}

// New creates an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		docs:       make(map[uuid.UUID]*engine.Document),
		views:      make(map[engine.ViewID]*engine.Document),
		lossy:      make(map[uuid.UUID]string),
		postInsert: hook.NewRegistry[PostInsertChar](),
		logger:     slog.Default(),
	}
	e.settings.Store(&settings{cfg: config.DefaultEditorConfig()})
	for _, opt := range opts {
		opt(e)
	}

	cfg := e.settings.Load().cfg
	if e.fileInfo == nil {
		e.fileInfo = fileinfo.New(cfg.FileInfoPath, cfg.SaveFileInfo, fileinfo.WithLogger(e.logger))
	}
	e.install(cfg)
	return e
}

// SetConfig installs new settings. Hooks see them from the next event on.
// A failure to prepare the indentation calculator is returned, but the
// rest of the settings are installed and indentation falls back to the
// built-in heuristics.
func (e *Editor) SetConfig(cfg config.EditorConfig) error {
	err := e.install(cfg)
	if ferr := e.fileInfo.SetEnabled(cfg.SaveFileInfo); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return err
}

func (e *Editor) install(cfg config.EditorConfig) error {
	var (
		calc      indent.Calculator
		heuristic indent.Heuristic
		style     indent.Style
		err       error
	)
	if e.customCalc != nil {
		heuristic, err = indent.ParseHeuristic(cfg.IndentHeuristic)
		calc = e.customCalc
		style = styleFor(cfg)
	} else {
		calc, heuristic, style, err = indent.FromConfig(cfg, indent.WithErrorHandler(func(err error) {
			e.logger.Error("indent script failed", "error", err)
		}))
	}
	if err != nil {
		e.logger.Error("indentation setup failed, using built-in heuristics", "error", err)
		if calc == nil {
			calc = indent.HeuristicCalculator{}
		}
		style = styleFor(cfg)
	}

	old := e.settings.Swap(&settings{
		cfg:       cfg,
		raw:       calc,
		owned:     e.customCalc == nil,
		calc:      indent.Safe(calc),
		heuristic: heuristic,
		style:     style,
	})
	if old != nil && old.owned {
		closeCalculator(old.raw)
	}
	return err
}

// closeCalculator releases calculators that hold resources, such as the
// Lua state of a script calculator.
func closeCalculator(c indent.Calculator) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Config returns the current editor settings.
func (e *Editor) Config() config.EditorConfig {
	return e.settings.Load().cfg
}

// WatchConfig keeps the editor settings in sync with c.
func (e *Editor) WatchConfig(c *config.Config) {
	c.OnChange(func(c *config.Config) {
		if err := e.SetConfig(c.Editor()); err != nil {
			e.logger.Error("applying reloaded config", "error", err)
		}
	})
}

// TextWidth resolves the wrap width for doc: the document's own override
// when set, the editor setting otherwise.
func (e *Editor) TextWidth(doc *engine.Document) int {
	if w, ok := doc.TextWidth(); ok {
		return w
	}
	return e.Config().TextWidth
}

// Indentation returns the current calculator and heuristic. The calculator
// never panics and treats failures as no indentation.
func (e *Editor) Indentation() (indent.Calculator, indent.Heuristic) {
	s := e.settings.Load()
	return s.calc, s.heuristic
}

// IndentFor computes the indentation of a new line started at pos in doc.
func (e *Editor) IndentFor(doc *engine.Document, pos engine.CharOffset) string {
	calc, heuristic := e.Indentation()
	line := doc.CharToLine(pos)
	return calc.Indent(indent.Request{
		Language:     doc.Language(),
		Heuristic:    heuristic,
		Style:        doc.IndentStyle(),
		TabWidth:     doc.TabWidth(),
		Text:         doc.Snapshot(),
		CurrentLine:  line,
		Position:     pos,
		LineToIndent: line,
	})
}

// PostInsertCharHooks returns the registry of hooks run after InsertChar.
func (e *Editor) PostInsertCharHooks() *hook.Registry[PostInsertChar] {
	return e.postInsert
}

// Logger returns the editor's logger.
func (e *Editor) Logger() Logger {
	return e.logger
}

// FileInfo returns the cursor position store.
func (e *Editor) FileInfo() *fileinfo.Store {
	return e.fileInfo
}

// Shutdown closes every view, remembering cursor positions, and releases
// the editor's resources.
func (e *Editor) Shutdown() error {
	var errs []error
	for _, view := range e.Views() {
		if err := e.Close(view); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.fileInfo.Close(); err != nil {
		errs = append(errs, err)
	}
	if s := e.settings.Load(); s.owned {
		closeCalculator(s.raw)
	}
	return errors.Join(errs...)
}

func styleFor(cfg config.EditorConfig) indent.Style {
	if cfg.InsertSpaces {
		return indent.Spaces(cfg.IndentWidth)
	}
	return indent.Tabs()
}
