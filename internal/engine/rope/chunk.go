package rope

import "unicode/utf8"

// Chunk size limits, in bytes.
const (
	// MinChunkSize is the window searched for a newline when splitting.
	MinChunkSize = 128

	// MaxChunkSize is the largest chunk a leaf holds.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// splitIntoChunks cuts s into pieces of at most MaxChunkSize bytes.
func splitIntoChunks(s string) []string {
	if len(s) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		at := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, s[:at])
		s = s[at:]
	}
	return append(chunks, s)
}

// chunkBoundary picks a split point near target. It prefers the position
// just after a newline and never cuts a UTF-8 sequence.
func chunkBoundary(s string, target int) int {
	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	at := target
	for at > 0 && !utf8.RuneStart(s[at]) {
		at--
	}
	return at
}

// validText replaces invalid UTF-8 so that every byte sequence in a rope
// decodes to exactly one character.
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return string([]rune(s))
}
