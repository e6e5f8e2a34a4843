// Package config holds typewrap's settings.
//
// Settings live in sections ("editor") and are read through typed section
// accessors:
//
//	cfg := config.New(config.WithPath("~/.config/typewrap/config.toml"))
//	if err := cfg.Load(ctx); err != nil { ... }
//	width := cfg.Editor().TextWidth
//
// Sources are layered, later ones winning: built-in defaults, the config
// file (TOML or YAML, chosen by extension), TYPEWRAP_* environment
// variables, then values set with Set (command-line flags). The merged
// result is validated before it replaces the previous one, so a bad edit to
// the file on disk leaves the running configuration untouched.
//
// Watch enables live reload through fsnotify; OnChange handlers run after
// every successful reload.
package config
