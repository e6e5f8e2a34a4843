package history

import (
	"fmt"

	"github.com/dshills/typewrap/internal/engine/buffer"
	"github.com/dshills/typewrap/internal/engine/cursor"
)

// Target applies edits replayed by undo and redo.
// *buffer.Buffer satisfies it.
type Target interface {
	ApplyEdit(edit buffer.Edit) (buffer.EditResult, error)
}

// Command represents an edit that can be redone and undone.
type Command interface {
	// Execute performs the command. cursors may be nil.
	Execute(t Target, cursors *cursor.CursorSet) error

	// Undo reverses the command. cursors may be nil.
	Undo(t Target, cursors *cursor.CursorSet) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand records a single edit that has already been applied.
type EditCommand struct {
	op *Operation
}

// NewEditCommand records an applied edit and the acting view's selections
// around it.
func NewEditCommand(res buffer.EditResult, before, after []Selection) *EditCommand {
	return &EditCommand{op: NewOperationFromResult(res).WithCursors(before, after)}
}

// Operation returns the recorded operation.
func (c *EditCommand) Operation() *Operation {
	return c.op
}

// Execute reapplies the edit.
func (c *EditCommand) Execute(t Target, cursors *cursor.CursorSet) error {
	if _, err := t.ApplyEdit(c.op.Edit()); err != nil {
		return fmt.Errorf("redo %s: %w", c.op.Range, err)
	}
	if cursors != nil && len(c.op.CursorsAfter) > 0 {
		cursors.SetAll(c.op.CursorsAfter)
	}
	return nil
}

// Undo applies the inverse edit and restores the selections from before it.
func (c *EditCommand) Undo(t Target, cursors *cursor.CursorSet) error {
	inv := c.op.Invert()
	if _, err := t.ApplyEdit(inv.Edit()); err != nil {
		return fmt.Errorf("undo %s: %w", c.op.Range, err)
	}
	if cursors != nil && len(c.op.CursorsBefore) > 0 {
		cursors.SetAll(c.op.CursorsBefore)
	}
	return nil
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	switch {
	case c.op.IsInsert():
		if c.op.NewText == "\n" {
			return "Insert newline"
		}
		return fmt.Sprintf("Insert %q", c.op.NewText)
	case c.op.IsDelete():
		return fmt.Sprintf("Delete %d characters", c.op.Range.Len())
	default:
		return fmt.Sprintf("Replace %s with %q", c.op.Range, c.op.NewText)
	}
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(t Target, cursors *cursor.CursorSet) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(t, cursors); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(t, cursors)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(t Target, cursors *cursor.CursorSet) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(t, cursors); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}
