package reflow

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/typewrap/internal/config"
	"github.com/dshills/typewrap/internal/editor"
	"github.com/dshills/typewrap/internal/engine"
)

type logEntry struct {
	level string
	msg   string
	kv    []interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, kv: kv})
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.add("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.add("info", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.add("error", msg, kv) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func newWrappingEditor(t *testing.T, wrap bool, width int, logger editor.Logger) *editor.Editor {
	t.Helper()
	cfg := config.DefaultEditorConfig()
	cfg.WrapWhenTyping = wrap
	cfg.TextWidth = width
	cfg.FileInfoPath = filepath.Join(t.TempDir(), "info.sqlite")
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ed := editor.New(editor.WithConfig(cfg), editor.WithLogger(logger))
	RegisterHooks(ed)
	t.Cleanup(func() { ed.Shutdown() })
	return ed
}

func typeString(t *testing.T, ed *editor.Editor, view engine.ViewID, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, ed.InsertChar(view, r))
	}
}

func docText(t *testing.T, ed *editor.Editor, view engine.ViewID) string {
	t.Helper()
	doc, err := ed.Document(view)
	require.NoError(t, err)
	return doc.Text()
}

func TestHookWrapsWhileTyping(t *testing.T) {
	ed := newWrappingEditor(t, true, 20, nil)
	view := ed.NewScratch("")

	typeString(t, ed, view, "the quick brown fox jumps")

	assert.Equal(t, "the quick brown fox\njumps", docText(t, ed, view))
	doc, err := ed.Document(view)
	require.NoError(t, err)
	sel, err := doc.PrimarySelection(view)
	require.NoError(t, err)
	assert.Equal(t, doc.Len(), sel.Cursor(), "cursor stays at the end of the typed text")
}

func TestHookKeepsIndentationWhileTyping(t *testing.T) {
	ed := newWrappingEditor(t, true, 16, nil)
	view := ed.NewScratch("    ")
	require.NoError(t, ed.SetCursor(view, 4))

	typeString(t, ed, view, "one two three four")

	assert.Equal(t, "    one two\n    three four", docText(t, ed, view))
}

func TestHookDisabled(t *testing.T) {
	ed := newWrappingEditor(t, false, 20, nil)
	view := ed.NewScratch("")

	typeString(t, ed, view, "the quick brown fox jumps")

	assert.Equal(t, "the quick brown fox jumps", docText(t, ed, view))
}

func TestHookZeroWidth(t *testing.T) {
	ed := newWrappingEditor(t, true, 0, nil)
	view := ed.NewScratch("")

	typeString(t, ed, view, "the quick brown fox jumps")

	assert.Equal(t, "the quick brown fox jumps", docText(t, ed, view))
}

func TestHookUsesDocumentTextWidth(t *testing.T) {
	ed := newWrappingEditor(t, true, 80, nil)
	view := ed.NewScratch("")
	doc, err := ed.Document(view)
	require.NoError(t, err)
	doc.SetTextWidth(10)

	typeString(t, ed, view, "aaaa bbbb cccc")

	assert.Equal(t, "aaaa bbbb\ncccc", doc.Text())
}

func TestHookFollowsConfigChanges(t *testing.T) {
	ed := newWrappingEditor(t, false, 10, nil)
	view := ed.NewScratch("")

	typeString(t, ed, view, "aaaa bbbb c")
	require.Equal(t, "aaaa bbbb c", docText(t, ed, view))

	cfg := ed.Config()
	cfg.WrapWhenTyping = true
	require.NoError(t, ed.SetConfig(cfg))

	typeString(t, ed, view, "c")
	assert.Equal(t, "aaaa bbbb\ncc", docText(t, ed, view))
}

func TestHookMultipleCursors(t *testing.T) {
	ed := newWrappingEditor(t, true, 10, nil)
	view := ed.NewScratch("aaaa bbbb\nshort\ncccc dddd")
	require.NoError(t, ed.SetCursor(view, 9))
	require.NoError(t, ed.AddCursor(view, 15))
	require.NoError(t, ed.AddCursor(view, 25))

	typeString(t, ed, view, "xy")

	assert.Equal(t, "aaaa\nbbbbxy\nshortxy\ncccc\nddddxy", docText(t, ed, view))
}

func TestHookUndoRestoresUnwrappedLine(t *testing.T) {
	ed := newWrappingEditor(t, true, 20, nil)
	view := ed.NewScratch("the quick brown fox ")
	require.NoError(t, ed.SetCursor(view, 20))

	require.NoError(t, ed.InsertChar(view, 'j'))
	require.Equal(t, "the quick brown fox\nj", docText(t, ed, view))

	require.NoError(t, ed.Undo(view))
	assert.Equal(t, "the quick brown fox j", docText(t, ed, view), "first undo removes the wrap")

	require.NoError(t, ed.Undo(view))
	assert.Equal(t, "the quick brown fox ", docText(t, ed, view), "second undo removes the character")
}

func TestHookLogsAppliedWraps(t *testing.T) {
	logger := &recordingLogger{}
	ed := newWrappingEditor(t, true, 5, logger)
	view := ed.NewScratch("")

	typeString(t, ed, view, "abc de")

	assert.Contains(t, logger.messages("debug"), "auto-wrap applied")
	assert.Empty(t, logger.messages("error"))
}

func TestRegisterHooksReplaces(t *testing.T) {
	ed := newWrappingEditor(t, true, 20, nil)
	RegisterHooks(ed)

	assert.Equal(t, []string{HookName}, ed.PostInsertCharHooks().Names())
}

func ExampleLocate() {
	idx, ok := Locate("the quick brown fox jumps", 20)
	fmt.Println(idx, ok)
	// Output: 19 true
}
