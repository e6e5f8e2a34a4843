package term

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/typewrap/internal/editor"
	"github.com/dshills/typewrap/internal/engine"
)

var (
	textStyle   = tcell.StyleDefault
	fillerStyle = tcell.StyleDefault.Dim(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
	cursorStyle = tcell.StyleDefault.Reverse(true)
)

// UI draws the focused view of an editor and feeds it key events.
//
// Keys: printable characters and Tab type text, Enter starts a new line,
// Backspace deletes, arrows/Home/End move. Ctrl-S saves, Ctrl-Z undoes,
// Ctrl-Y redoes, Ctrl-W toggles wrap-when-typing and Ctrl-Q quits (twice
// when a document has unsaved changes).
type UI struct {
	ed   *editor.Editor
	term *Terminal

	top       int
	status    string
	pasting   bool
	quitArmed bool
}

// New creates a UI for ed drawing on t.
func New(ed *editor.Editor, t *Terminal) *UI {
	return &UI{ed: ed, term: t}
}

// Status returns the message shown in the status line.
func (u *UI) Status() string {
	return u.status
}

// Run processes events until the user quits, ctx is cancelled or the
// terminal shuts down. The terminal must already be initialized.
func (u *UI) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, u.term.Interrupt)
	defer stop()

	u.Draw()
	for {
		ev := u.term.PollEvent()
		if ev == nil {
			return nil
		}
		if u.HandleEvent(ev) {
			return ctx.Err()
		}
		u.Draw()
	}
}

// HandleEvent applies ev to the editor. It reports whether the UI should
// stop.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventResize:
		u.term.Sync()
	case *tcell.EventPaste:
		u.pasting = ev.Start()
	case *tcell.EventKey:
		return u.handleKey(ev)
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	view, ok := u.ed.Focus()
	if !ok {
		return ev.Key() == tcell.KeyCtrlQ
	}

	if ev.Key() != tcell.KeyCtrlQ {
		u.quitArmed = false
	}

	var err error
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return u.quit()
	case tcell.KeyCtrlS:
		err = u.ed.Save(view)
		if err == nil {
			u.status = "saved"
		}
	case tcell.KeyCtrlZ:
		err = u.ed.Undo(view)
	case tcell.KeyCtrlY:
		err = u.ed.Redo(view)
	case tcell.KeyCtrlW:
		err = u.toggleWrap()
	case tcell.KeyEnter:
		if u.pasting {
			err = u.ed.InsertText(view, "\n")
		} else {
			err = u.ed.InsertNewline(view)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		err = u.ed.DeleteBackward(view)
	case tcell.KeyTab:
		err = u.typeRune(view, '\t')
	case tcell.KeyLeft:
		err = u.ed.Move(view, editor.Left)
	case tcell.KeyRight:
		err = u.ed.Move(view, editor.Right)
	case tcell.KeyUp:
		err = u.ed.Move(view, editor.Up)
	case tcell.KeyDown:
		err = u.ed.Move(view, editor.Down)
	case tcell.KeyHome:
		err = u.ed.Move(view, editor.LineStart)
	case tcell.KeyEnd:
		err = u.ed.Move(view, editor.LineEnd)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return false
		}
		err = u.typeRune(view, ev.Rune())
	}

	if err != nil {
		u.fail(err)
	}
	return false
}

// typeRune inserts r. Pasted text does not run the insert hooks.
func (u *UI) typeRune(view engine.ViewID, r rune) error {
	if u.pasting {
		return u.ed.InsertText(view, string(r))
	}
	return u.ed.InsertChar(view, r)
}

func (u *UI) quit() bool {
	if u.quitArmed || !u.unsaved() {
		return true
	}
	u.quitArmed = true
	u.status = "unsaved changes; press Ctrl-Q again to quit"
	return false
}

func (u *UI) unsaved() bool {
	for _, view := range u.ed.Views() {
		doc, err := u.ed.Document(view)
		if err == nil && doc.IsModified() {
			return true
		}
	}
	return false
}

func (u *UI) toggleWrap() error {
	cfg := u.ed.Config()
	cfg.WrapWhenTyping = !cfg.WrapWhenTyping
	if err := u.ed.SetConfig(cfg); err != nil {
		return err
	}
	if cfg.WrapWhenTyping {
		u.status = "wrap on"
	} else {
		u.status = "wrap off"
	}
	return nil
}

func (u *UI) fail(err error) {
	switch {
	case errors.Is(err, editor.ErrNoPath):
		u.status = "no file name; start typewrap with a path to save"
	case errors.Is(err, engine.ErrReadOnly):
		u.status = "document is read-only"
	case errors.Is(err, editor.ErrLossyDecode):
		u.status = "not saved: file is not valid UTF-8"
	default:
		u.status = err.Error()
	}
	u.ed.Logger().Debug("key handling failed", "error", err)
	u.term.Beep()
}

// Draw renders the focused view and the status line.
func (u *UI) Draw() {
	u.term.Clear()
	width, height := u.term.Size()
	rows := height - 1

	view, ok := u.ed.Focus()
	if !ok {
		u.drawStatus("[no document]", height-1, width)
		u.term.HideCursor()
		u.term.Show()
		return
	}
	doc, err := u.ed.Document(view)
	if err != nil {
		u.drawStatus(err.Error(), height-1, width)
		u.term.Show()
		return
	}

	sels, err := doc.Selections(view)
	if err != nil {
		u.drawStatus(err.Error(), height-1, width)
		u.term.Show()
		return
	}
	primary, _ := doc.PrimarySelection(view)
	p := doc.OffsetToPoint(primary.Cursor())
	u.top = scroll(u.top, p.Line, rows)

	tab := doc.TabWidth()
	for y := 0; y < rows; y++ {
		line := u.top + y
		if line >= doc.LineCount() {
			u.term.SetCell(0, y, '~', fillerStyle)
			continue
		}
		x := 0
		for _, r := range doc.LineText(line) {
			if x >= width {
				break
			}
			w := cellWidth(r, x, tab)
			if r == '\t' {
				for i := 0; i < w; i++ {
					u.term.SetCell(x+i, y, ' ', textStyle)
				}
			} else {
				u.term.SetCell(x, y, r, textStyle)
			}
			x += w
		}
	}

	// Secondary cursors are drawn as reversed cells.
	snap := doc.Snapshot()
	for _, sel := range sels {
		if sel.Cursor() == primary.Cursor() {
			continue
		}
		sp := doc.OffsetToPoint(sel.Cursor())
		if sp.Line < u.top || sp.Line >= u.top+rows {
			continue
		}
		r, ok := snap.RuneAt(sel.Cursor())
		if !ok || r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		u.term.SetCell(DisplayColumn(doc.LineText(sp.Line), sp.Column, tab), sp.Line-u.top, r, cursorStyle)
	}

	u.drawStatus(u.statusLine(doc, p), height-1, width)
	u.term.ShowCursor(DisplayColumn(doc.LineText(p.Line), p.Column, tab), p.Line-u.top)
	u.term.Show()
}

func (u *UI) statusLine(doc *engine.Document, p engine.Point) string {
	name := "[scratch]"
	if doc.Path() != "" {
		name = filepath.Base(doc.Path())
	}
	if doc.IsModified() {
		name += " [+]"
	}
	wrap := "nowrap"
	if u.ed.Config().WrapWhenTyping {
		wrap = fmt.Sprintf("wrap:%d", u.ed.TextWidth(doc))
	}
	line := fmt.Sprintf(" %s  %d:%d  %s", name, p.Line+1, p.Column+1, wrap)
	if u.status != "" {
		line += "  " + u.status
	}
	return line
}

func (u *UI) drawStatus(text string, y, width int) {
	u.term.FillRow(0, y, ' ', statusStyle)
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		u.term.SetCell(x, y, r, statusStyle)
		x += cellWidth(r, x, 1)
	}
}
