// Package main is the entry point for the typewrap editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/typewrap/internal/config"
	"github.com/dshills/typewrap/internal/editor"
	"github.com/dshills/typewrap/internal/hook"
	"github.com/dshills/typewrap/internal/reflow"
	"github.com/dshills/typewrap/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Replay     bool
	Files      []string

	// Overrides applied on top of the config file. Only flags given on
	// the command line are applied.
	Wrap      bool
	Width     int
	Heuristic string
	set       map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cfg.Close()

	ed := newEditor(cfg, logger)
	defer func() {
		if err := ed.Shutdown(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	if opts.Replay {
		if err := replay(ed, opts.Files, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if cfg.Path() != "" {
		if err := cfg.Watch(); err != nil {
			logger.Error("config watch disabled", "error", err)
		}
	}

	if err := openFiles(ed, opts.Files); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	t, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := t.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	err = term.New(ed, t).Run(ctx)
	t.Shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newEditor builds the editor with the auto-wrap and audit hooks installed
// and keeps it in sync with cfg.
func newEditor(cfg *config.Config, logger *slog.Logger) *editor.Editor {
	ed := editor.New(editor.WithConfig(cfg.Editor()), editor.WithLogger(logger))
	reflow.RegisterHooks(ed)
	ed.PostInsertCharHooks().Register(hook.NewAuditHook[editor.PostInsertChar](logger, "post-insert-char"))
	ed.WatchConfig(cfg)
	return ed
}

func loadConfig(ctx context.Context, opts options, logger *slog.Logger) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg := config.New(config.WithPath(path), config.WithLogger(logger))
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overrides := []struct {
		flag  string
		key   string
		value any
	}{
		{"wrap", config.KeyWrapWhenTyping, opts.Wrap},
		{"width", config.KeyTextWidth, opts.Width},
		{"heuristic", config.KeyIndentHeuristic, opts.Heuristic},
	}
	for _, o := range overrides {
		if !opts.set[o.flag] {
			continue
		}
		if err := cfg.Set(o.key, o.value); err != nil {
			return nil, fmt.Errorf("-%s: %w", o.flag, err)
		}
	}
	return cfg, nil
}

// defaultConfigPath returns the first config file present in the config
// directory, or "" when there is none.
func defaultConfigPath() string {
	dir := config.DefaultConfigDir()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func openFiles(ed *editor.Editor, files []string) error {
	if len(files) == 0 {
		ed.NewScratch("")
		return nil
	}
	for _, f := range files {
		if _, err := ed.Open(f); err != nil {
			return fmt.Errorf("opening %s: %w", f, err)
		}
	}
	// Focus the first file given.
	views := ed.Views()
	return ed.SetFocus(views[0])
}

func newLogger(opts options) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case opts.Replay:
		// The terminal owns stdout and stderr in interactive mode.
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Wrap, "wrap", false, "Wrap lines while typing")
	flag.IntVar(&opts.Width, "width", 80, "Text width used by wrapping")
	flag.StringVar(&opts.Heuristic, "heuristic", "keep", "Indent heuristic (none, keep, brackets, script)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log", "", "Write logs to this file")
	flag.BoolVar(&opts.Replay, "replay", false, "Type standard input into the document and print the result")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typewrap - a terminal editor that wraps while you type\n\n")
		fmt.Fprintf(os.Stderr, "Usage: typewrap [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  typewrap notes.txt                        Edit a file\n")
		fmt.Fprintf(os.Stderr, "  typewrap -wrap -width 72 notes.txt        Wrap at 72 columns\n")
		fmt.Fprintf(os.Stderr, "  echo 'some text' | typewrap -replay -wrap Type stdin and print the result\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("typewrap %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.Files = flag.Args()
	return opts
}
