package buffer

import (
	"fmt"
	"sync/atomic"
)

// CharOffset is a character (codepoint) position in the buffer.
type CharOffset = int

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column counts characters.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

var lastRevision atomic.Uint64

// NewRevisionID returns a revision ID never handed out before.
func NewRevisionID() RevisionID {
	return RevisionID(lastRevision.Add(1))
}
