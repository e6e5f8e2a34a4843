package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/typewrap/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	groupDepth int
	groupName  string
	groupCmds  []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records a command that has already been applied.
// It clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth > 0 {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if n := len(h.undoStack); n > h.maxEntries {
		h.undoStack = h.undoStack[n-h.maxEntries:]
	}
}

// Undo undoes the last command and moves it to the redo stack.
func (h *History) Undo(t Target, cursors *cursor.CursorSet) error {
	return h.step(&h.undoStack, &h.redoStack, ErrNothingToUndo, func(cmd Command) error {
		return cmd.Undo(t, cursors)
	})
}

// Redo re-executes the last undone command.
func (h *History) Redo(t Target, cursors *cursor.CursorSet) error {
	return h.step(&h.redoStack, &h.undoStack, ErrNothingToRedo, func(cmd Command) error {
		return cmd.Execute(t, cursors)
	})
}

// step pops the top entry of from, replays it and pushes it onto to. A
// failed replay puts the entry back. The lock is not held while the
// command replays its edits, because the target may call back into the
// owner.
func (h *History) step(from, to *[]*undoEntry, empty error, replay func(Command) error) error {
	h.mu.Lock()
	if len(*from) == 0 {
		h.mu.Unlock()
		return empty
	}
	entry := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	h.mu.Unlock()

	err := replay(entry.command)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		*from = append(*from, entry)
		return err
	}
	*to = append(*to, entry)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// BeginGroup starts a command group. Commands pushed until EndGroup are
// combined into one undo unit. Groups nest; the outermost name is kept and
// the unit is recorded when the outermost group ends.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.groupDepth++
	if h.groupDepth > 1 {
		return
	}
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup closes the current group. An empty group records nothing.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		return
	}
	h.groupDepth--
	if h.groupDepth > 0 {
		return
	}

	if len(h.groupCmds) > 0 {
		h.pushLocked(NewCompoundCommand(h.groupName, h.groupCmds...))
	}
	h.groupCmds = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupDepth > 0
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	top := h.undoStack[len(h.undoStack)-1]
	return OperationInfo{Description: top.command.Description(), Timestamp: top.timestamp}, true
}
