package config

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/typewrap/internal/config/loader"
)

type mapFS map[string]string

func (m mapFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestConfig(files mapFS, path string, environ ...string) *Config {
	return New(
		WithPath(path),
		WithFileSystem(files),
		WithEnviron(append([]string{}, environ...)),
		WithLogger(discard),
	)
}

func TestDefaults(t *testing.T) {
	c := newTestConfig(mapFS{}, "")
	require.NoError(t, c.Load(context.Background()))

	ed := c.Editor()
	assert.False(t, ed.WrapWhenTyping)
	assert.Equal(t, 80, ed.TextWidth)
	assert.Equal(t, "keep", ed.IndentHeuristic)
	assert.Equal(t, 4, ed.TabWidth)
	assert.True(t, ed.InsertSpaces)
	assert.False(t, ed.SaveFileInfo)
	assert.Equal(t, "info.sqlite", filepath.Base(ed.FileInfoPath))
}

func TestLoadTOML(t *testing.T) {
	files := mapFS{"/etc/typewrap.toml": `
[editor]
wrap-when-typing = true
text-width = 72
indent-heuristic = "brackets"
`}
	c := newTestConfig(files, "/etc/typewrap.toml")
	require.NoError(t, c.Load(context.Background()))

	ed := c.Editor()
	assert.True(t, ed.WrapWhenTyping)
	assert.Equal(t, 72, ed.TextWidth)
	assert.Equal(t, "brackets", ed.IndentHeuristic)
	assert.Equal(t, 4, ed.TabWidth, "unset keys keep defaults")
}

func TestLoadYAML(t *testing.T) {
	files := mapFS{"/etc/typewrap.yaml": "editor:\n  text-width: 40\n  insert-spaces: false\n"}
	c := newTestConfig(files, "/etc/typewrap.yaml")
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 40, c.Editor().TextWidth)
	assert.False(t, c.Editor().InsertSpaces)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	c := newTestConfig(mapFS{}, "/nowhere/config.toml")
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 80, c.Editor().TextWidth)
}

func TestUnsupportedExtension(t *testing.T) {
	c := newTestConfig(mapFS{"/c.json": "{}"}, "/c.json")
	err := c.Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestPrecedence(t *testing.T) {
	files := mapFS{"/c.toml": "[editor]\ntext-width = 72\ntab-width = 8\n"}
	c := newTestConfig(files, "/c.toml", "TYPEWRAP_EDITOR_TEXT_WIDTH=60")
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 60, c.Editor().TextWidth, "env beats file")
	assert.Equal(t, 8, c.Editor().TabWidth, "file beats defaults")

	require.NoError(t, c.Set(KeyTextWidth, 30))
	assert.Equal(t, 30, c.Editor().TextWidth, "overrides beat env")

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 30, c.Editor().TextWidth, "overrides survive reload")
}

func TestValidationRejectsBadFile(t *testing.T) {
	files := mapFS{"/c.toml": "[editor]\ntext-width = 50\n"}
	c := newTestConfig(files, "/c.toml")
	require.NoError(t, c.Load(context.Background()))

	files["/c.toml"] = "[editor]\ntext-width = -1\nindent-heuristic = \"clever\"\n"
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	assert.Equal(t, 50, c.Editor().TextWidth, "previous settings stay in effect")
}

func TestSetRejectsInvalid(t *testing.T) {
	c := newTestConfig(mapFS{}, "")
	err := c.Set(KeyTabWidth, 0)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 4, c.Editor().TabWidth)
}

func TestTypeErrorsAreRecorded(t *testing.T) {
	files := mapFS{"/c.yaml": "editor:\n  indent-script: 12\n"}
	c := newTestConfig(files, "/c.yaml")
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, "", c.Editor().IndentScript)
	errs := c.ConfigErrors()
	require.Contains(t, errs, KeyIndentScript)
	assert.ErrorIs(t, errs[KeyIndentScript], ErrTypeMismatch)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntext-width = 70\n"), 0o644))

	c := New(WithPath(path), WithEnviron([]string{}), WithLogger(discard))
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Watch())
	defer c.Close()

	changed := make(chan int, 4)
	c.OnChange(func(c *Config) {
		select {
		case changed <- c.Editor().TextWidth:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntext-width = 65\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case w := <-changed:
			if w == 65 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatchWithoutPath(t *testing.T) {
	c := New(WithLogger(discard))
	assert.ErrorIs(t, c.Watch(), ErrNoPath)
}
