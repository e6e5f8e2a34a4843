// Package buffer provides the text buffer used by the editor engine.
//
// Text is stored as an immutable value with a line index, so snapshots share
// storage with the buffer they were taken from and never observe later edits.
// All positions are character (Unicode codepoint) offsets; the package never
// exposes byte offsets.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Conversion between character offsets, line indices and points
//   - Read-only snapshots for consistent multi-step reads
//   - Line ending normalization (LF, CRLF, CR)
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
//	snap := buf.Snapshot()
//	line := snap.CharToLine(3)
//	start, end := snap.LineStart(line), snap.LineEnd(line)
//
// Lines:
//
// A line is the half-open range [LineStart, LineEnd). LineEnd excludes the
// line terminator; the final line has no terminator. An empty buffer has one
// empty line.
package buffer
