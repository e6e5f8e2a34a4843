package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/typewrap/internal/config"
)

func testEditorConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content += "\nfile-info-path = \"" + filepath.ToSlash(filepath.Join(dir, "info.sqlite")) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := config.New(config.WithPath(path), config.WithEnviron([]string{}))
	require.NoError(t, cfg.Load(context.Background()))
	return cfg
}

func replayString(t *testing.T, cfg *config.Config, files []string, input string) string {
	t.Helper()
	ed := newEditor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { ed.Shutdown() })

	var out strings.Builder
	require.NoError(t, replay(ed, files, strings.NewReader(input), &out))
	return out.String()
}

func TestReplayWraps(t *testing.T) {
	cfg := testEditorConfig(t, "[editor]\nwrap-when-typing = true\ntext-width = 20")

	got := replayString(t, cfg, nil, "The quick brown fox jumps over the lazy dog")
	assert.Equal(t, "The quick brown fox\njumps over the lazy\ndog", got)
}

func TestReplayWithoutWrap(t *testing.T) {
	cfg := testEditorConfig(t, "[editor]\nwrap-when-typing = false")

	input := "The quick brown fox jumps over the lazy dog"
	assert.Equal(t, input, replayString(t, cfg, nil, input))
}

func TestReplayKeepsIndentation(t *testing.T) {
	cfg := testEditorConfig(t, "[editor]\nwrap-when-typing = true\ntext-width = 12")

	got := replayString(t, cfg, nil, "    aaa bbb ccc")
	assert.Equal(t, "    aaa bbb\n    ccc", got)
}

func TestReplayAppendsToFile(t *testing.T) {
	cfg := testEditorConfig(t, "[editor]\nwrap-when-typing = true\ntext-width = 10")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	got := replayString(t, cfg, []string{path}, " world")
	assert.Equal(t, "hello\nworld", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "replay must not save")
}

func TestReplayNewlinesAndCarriageReturns(t *testing.T) {
	cfg := testEditorConfig(t, "[editor]\nwrap-when-typing = false")

	assert.Equal(t, "a\nb", replayString(t, cfg, nil, "a\r\nb"))
}

func TestLoadConfigAppliesFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntext-width = 50\n"), 0o644))

	opts := options{
		ConfigPath: path,
		Wrap:       true,
		Width:      30,
		Heuristic:  "brackets",
		set:        map[string]bool{"wrap": true, "width": true},
	}
	cfg, err := loadConfig(context.Background(), opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ec := cfg.Editor()
	assert.True(t, ec.WrapWhenTyping)
	assert.Equal(t, 30, ec.TextWidth)
	assert.Equal(t, "keep", ec.IndentHeuristic, "unset flags keep the configured value")
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\n"), 0o644))

	opts := options{
		ConfigPath: path,
		Width:      -1,
		set:        map[string]bool{"width": true},
	}
	_, err := loadConfig(context.Background(), opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
