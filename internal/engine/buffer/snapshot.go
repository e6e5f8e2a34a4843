package buffer

// Snapshot is a read-only view of a buffer at a specific revision.
// It embeds the immutable Text, so every Text read method is available and
// the snapshot never changes when the buffer is edited.
type Snapshot struct {
	Text
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}
