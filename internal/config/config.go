package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/typewrap/internal/config/loader"
	"github.com/dshills/typewrap/internal/config/watcher"
)

// Logger is the logging interface used by the config package.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ChangeHandler is called after a successful reload.
type ChangeHandler func(c *Config)

// Config provides layered, validated access to settings.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string
	environ   []string

	file      map[string]any
	env       map[string]any
	overrides map[string]any
	merged    map[string]any

	watcher  *watcher.Watcher
	handlers []ChangeHandler
	logger   Logger

	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the config file. An empty path loads no file.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron reads overrides from environ instead of the process environment.
func WithEnviron(environ []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		fs:           loader.DefaultFS(),
		envPrefix:    loader.DefaultEnvPrefix,
		overrides:    make(map[string]any),
		logger:       slog.Default(),
		configErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merged = c.mergeLocked()
	return c
}

// DefaultConfigDir returns the per-user configuration directory,
// $XDG_CONFIG_HOME/typewrap on Linux.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "typewrap")
}

// Load reads the config file and environment, then validates and installs
// the merged result. On failure the previous settings stay in effect.
func (c *Config) Load(_ context.Context) error {
	file, err := c.readFile()
	if err != nil {
		return err
	}

	var envLoader *loader.EnvLoader
	if c.environ != nil {
		envLoader = loader.NewEnvLoaderFrom(c.envPrefix, c.environ)
	} else {
		envLoader = loader.NewEnvLoader(c.envPrefix)
	}
	env, err := envLoader.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	c.mu.Lock()
	prevFile, prevEnv := c.file, c.env
	c.file, c.env = file, env
	merged := c.mergeLocked()
	if err := validate(merged); err != nil {
		c.file, c.env = prevFile, prevEnv
		c.mu.Unlock()
		return err
	}
	c.merged = merged
	c.configErrors = make(map[string]error)
	c.mu.Unlock()

	c.logger.Debug("config loaded", "path", c.path)
	return nil
}

func (c *Config) readFile() (map[string]any, error) {
	if c.path == "" {
		return nil, nil
	}
	l, err := loader.ForPath(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	data, err := l.Load()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// mergeLocked layers defaults < file < env < overrides.
func (c *Config) mergeLocked() map[string]any {
	merged := loader.Clone(defaults())
	merged = loader.DeepMerge(merged, c.file)
	merged = loader.DeepMerge(merged, c.env)
	merged = loader.DeepMerge(merged, c.overrides)
	return merged
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	n, ok := asInt(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: fmt.Sprintf("%T", v)}
	}
	return n, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
	}
	return b, nil
}

func asInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		return int(val), true
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}

// Set overrides a value above every other source. The new value is
// validated; an invalid value is rejected and nothing changes.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	overrides := loader.Clone(c.overrides)
	loader.SetPath(overrides, path, value)

	prev := c.overrides
	c.overrides = overrides
	merged := c.mergeLocked()
	if err := validate(merged); err != nil {
		c.overrides = prev
		return err
	}
	c.merged = merged
	return nil
}

// OnChange registers a handler run after every successful reload.
func (c *Config) OnChange(h ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// Watch reloads the config file whenever it changes on disk.
func (c *Config) Watch() error {
	if c.path == "" {
		return ErrNoPath
	}

	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	w.OnChange(c.handleFileChange)
	w.OnError(func(err error) {
		c.logger.Error("config watcher", "error", err)
	})
	if err := w.Watch(c.path); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}

	c.mu.Lock()
	old := c.watcher
	c.watcher = w
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (c *Config) handleFileChange(event watcher.Event) {
	if err := c.Load(context.Background()); err != nil {
		var perr *loader.ParseError
		if errors.As(err, &perr) {
			c.logger.Error("config reload: parse failed", "path", perr.Path, "line", perr.Line, "error", perr.Message)
		} else {
			c.logger.Error("config reload failed", "path", event.Path, "error", err)
		}
		return
	}
	c.logger.Info("config reloaded", "path", event.Path, "op", event.Op.String())

	c.mu.RLock()
	handlers := make([]ChangeHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	for _, h := range handlers {
		h(c)
	}
}

// Close stops the watcher, if any.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

// ConfigErrors returns type errors recorded while reading sections.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		out[k] = v
	}
	return out
}

func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configErrors[path] = err
}
