package fileinfo

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrDisabled is returned by Open when the store is disabled.
var ErrDisabled = errors.New("file info store disabled")

// DefaultFileName is the database file name inside the config directory.
const DefaultFileName = "info.sqlite"

const schema = `CREATE TABLE IF NOT EXISTS fileinfo (
	filepath TEXT PRIMARY KEY,
	line INTEGER NOT NULL,
	column INTEGER NOT NULL,
	last_modified INTEGER NOT NULL
)`

// Logger is the logging interface used by the store.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Position is a saved cursor position. Line and Column are zero-based,
// Column counts characters.
type Position struct {
	Line         int
	Column       int
	LastModified time.Time
}

// Store persists cursor positions per file.
type Store struct {
	mu      sync.Mutex
	path    string
	enabled bool
	db      *sql.DB
	logger  Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for last_modified.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store backed by the database at path. Nothing is opened
// until the first Save or Load.
func New(path string, enabled bool, opts ...Option) *Store {
	s := &Store{
		path:    path,
		enabled: enabled,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if enabled {
		s.logger.Info("file info enabled", "path", path)
	} else {
		s.logger.Info("file info disabled")
	}
	return s
}

// Enabled reports whether positions are recorded.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled switches recording on or off. Turning it off closes the
// database.
func (s *Store) SetEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if !enabled {
		return s.closeLocked()
	}
	return nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Open opens the database and creates the table if needed. Save and Load
// call it implicitly.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *Store) openLocked() error {
	if !s.enabled {
		return ErrDisabled
	}
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("create table: %w", err)
	}
	s.db = db
	s.logger.Info("file info database opened", "path", s.path)
	return nil
}

// Save records the position for file. It is a no-op when disabled.
func (s *Store) Save(file string, line, column int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	if err := s.openLocked(); err != nil {
		return err
	}

	key := Canonical(file)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO fileinfo (filepath, line, column, last_modified)
		 VALUES (?, ?, ?, ?)`,
		key, line, column, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save position for %s: %w", key, err)
	}
	s.logger.Debug("file position saved", "file", key, "line", line, "column", column)
	return nil
}

// Load returns the saved position for file. The second result is false
// when the store is disabled or nothing was saved.
func (s *Store) Load(file string) (Position, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return Position{}, false, nil
	}
	if err := s.openLocked(); err != nil {
		return Position{}, false, err
	}

	key := Canonical(file)
	var (
		pos      Position
		modified int64
	)
	err := s.db.QueryRow(
		`SELECT line, column, last_modified FROM fileinfo WHERE filepath = ?`, key,
	).Scan(&pos.Line, &pos.Column, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("no saved file position", "file", key)
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("load position for %s: %w", key, err)
	}
	pos.LastModified = time.Unix(modified, 0)
	return pos, true, nil
}

// Delete forgets the position for file.
func (s *Store) Delete(file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	if err := s.openLocked(); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM fileinfo WHERE filepath = ?`, Canonical(file)); err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}

// Close closes the database. The store reopens it on next use.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Canonical returns the absolute, symlink-free form of path. Paths that do
// not exist yet stay absolute but unresolved.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}
