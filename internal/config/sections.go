package config

import (
	"errors"
	"path/filepath"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// Setting paths of the editor section.
const (
	KeyWrapWhenTyping  = "editor.wrap-when-typing"
	KeyTextWidth       = "editor.text-width"
	KeyIndentHeuristic = "editor.indent-heuristic"
	KeyTabWidth        = "editor.tab-width"
	KeyInsertSpaces    = "editor.insert-spaces"
	KeyIndentWidth     = "editor.indent-width"
	KeyIndentScript    = "editor.indent-script"
	KeySaveFileInfo    = "editor.save-file-info"
	KeyFileInfoPath    = "editor.file-info-path"
)

// Indent heuristic names accepted by editor.indent-heuristic.
var IndentHeuristics = []string{"none", "keep", "brackets", "script"}

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// WrapWhenTyping breaks lines at the text width while typing.
	WrapWhenTyping bool

	// TextWidth is the maximum line length in characters. Zero disables
	// wrapping even when WrapWhenTyping is set.
	TextWidth int

	// IndentHeuristic picks how continuation lines are indented
	// ("none", "keep", "brackets", "script").
	IndentHeuristic string

	// TabWidth is the display width of a tab.
	TabWidth int

	// InsertSpaces indents with spaces instead of tabs.
	InsertSpaces bool

	// IndentWidth is the number of spaces in one indentation unit.
	IndentWidth int

	// IndentScript is the Lua file used by the "script" heuristic.
	IndentScript string

	// SaveFileInfo remembers the cursor position of closed files.
	SaveFileInfo bool

	// FileInfoPath is the SQLite database holding remembered positions.
	FileInfoPath string
}

// Editor returns type-safe access to editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		WrapWhenTyping:  c.getBoolOr(KeyWrapWhenTyping, false),
		TextWidth:       c.getIntOr(KeyTextWidth, 80),
		IndentHeuristic: c.getStringOr(KeyIndentHeuristic, "keep"),
		TabWidth:        c.getIntOr(KeyTabWidth, 4),
		InsertSpaces:    c.getBoolOr(KeyInsertSpaces, true),
		IndentWidth:     c.getIntOr(KeyIndentWidth, 4),
		IndentScript:    c.getStringOr(KeyIndentScript, ""),
		SaveFileInfo:    c.getBoolOr(KeySaveFileInfo, false),
		FileInfoPath:    c.getStringOr(KeyFileInfoPath, defaultFileInfoPath()),
	}
}

// DefaultEditorConfig returns the built-in editor settings.
func DefaultEditorConfig() EditorConfig {
	return New().Editor()
}

func defaultFileInfoPath() string {
	return filepath.Join(DefaultConfigDir(), "info.sqlite")
}

// defaults returns the built-in settings layer.
func defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"wrap-when-typing": false,
			"text-width":       80,
			"indent-heuristic": "keep",
			"tab-width":        4,
			"insert-spaces":    true,
			"indent-width":     4,
			"indent-script":    "",
			"save-file-info":   false,
		},
	}
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}
