// Package loader reads configuration sources into plain maps.
//
// A FileLoader decodes a TOML or YAML file; the EnvLoader turns prefixed
// variables into nested keys. Every loader yields a map[string]any so
// sources can be layered with DeepMerge.
package loader

import "os"

// Loader reads one configuration source. A source that does not exist
// yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem abstracts file reads so tests can use an in-memory tree.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return osFS{}
}
